package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

const (
	KindCampus = "campus"
	KindZone   = "zone"
	KindRider  = "rider"
)

var (
	campusMessages = workflow.Messages{
		Created: "Campus created successfully!",
		Failed:  "Failed to create campus.",
	}
	campusDetailMessages = workflow.DetailMessages{
		Saved:      "Campus updated successfully!",
		SaveFailed: "Failed to update campus.",
	}
	zoneMessages = workflow.Messages{
		Created: "Zone created successfully!",
		Failed:  "Failed to create zone.",
	}
	zoneDetailMessages = workflow.DetailMessages{
		Saved:        "Zone updated successfully!",
		SaveFailed:   "Failed to update zone.",
		Deleted:      "Zone deleted successfully!",
		DeleteFailed: "Failed to delete zone.",
		ConfirmText:  "Are you sure you want to delete this zone?",
	}
	riderMessages = workflow.Messages{
		Created: "Rider created!",
		Failed:  "Failed to create rider.",
	}
	riderDetailMessages = workflow.DetailMessages{
		Saved:      "Rider updated successfully!",
		SaveFailed: "Failed to update rider.",
	}
)

// CampusFlows groups the create form, list and detail panel for campuses.
type CampusFlows struct {
	Form   *FormFlow[domain.CampusPayload]
	List   *ListFlow[domain.Campus]
	Detail *DetailFlow[domain.Campus]
}

func NewCampusFlows(cfg FlowConfig, gate workflow.Gate, svc *CampusService) *CampusFlows {
	list := NewLocalListFlow(cfg, KindCampus, func(ctx context.Context, session *domain.Session, filters map[string]string) ([]domain.Campus, error) {
		return svc.List(ctx, session, domain.CampusFilter{
			Name:             strings.TrimSpace(filters["name"]),
			EduMailExtension: strings.TrimSpace(filters["eduMailExtension"]),
		})
	})

	form := NewFormFlow(cfg, workflow.Schema[domain.CampusPayload]{
		Kind:     KindCampus,
		Policy:   workflow.Policy{RequiresPreview: true},
		Initial:  domain.NewCampusDraft,
		Build:    domain.BuildCampusPayload,
		Messages: campusMessages,
	}, gate, func(ctx context.Context, session *domain.Session, payload domain.CampusPayload) error {
		campus, err := svc.Create(ctx, session, &payload)
		if err != nil {
			return err
		}
		list.Append(session, *campus)
		return nil
	})

	detail := NewDetailFlow(cfg, KindCampus, workflow.Codec[domain.Campus]{
		Flatten: domain.CampusDraftOf,
		Inflate: domain.ApplyCampusDraft,
	}, campusDetailMessages, gate, list, DetailHooks[domain.Campus]{
		Fetch: func(ctx context.Context, session *domain.Session, id string) (domain.Campus, error) {
			c, err := svc.Get(ctx, session, id)
			if err != nil {
				return domain.Campus{}, err
			}
			return *c, nil
		},
		Update: func(ctx context.Context, session *domain.Session, c domain.Campus) (domain.Campus, error) {
			updated, err := svc.Update(ctx, session, c)
			if err != nil {
				return domain.Campus{}, err
			}
			return *updated, nil
		},
	})

	return &CampusFlows{Form: form, List: list, Detail: detail}
}

// ZoneFlows groups the create form, list and detail panel for zones.
type ZoneFlows struct {
	Form   *FormFlow[domain.ZonePayload]
	List   *ListFlow[domain.Zone]
	Detail *DetailFlow[domain.Zone]
}

func NewZoneFlows(cfg FlowConfig, gate workflow.Gate, svc *ZoneService) *ZoneFlows {
	list := NewLocalListFlow(cfg, KindZone, func(ctx context.Context, session *domain.Session, filters map[string]string) ([]domain.Zone, error) {
		zones, err := svc.List(ctx, session)
		if err != nil {
			return nil, err
		}
		campusID := strings.TrimSpace(filters["campusId"])
		if campusID == "" {
			return zones, nil
		}
		out := make([]domain.Zone, 0, len(zones))
		for _, z := range zones {
			if z.CampusID == campusID {
				out = append(out, z)
			}
		}
		return out, nil
	})

	form := NewFormFlow(cfg, workflow.Schema[domain.ZonePayload]{
		Kind:     KindZone,
		Policy:   workflow.Policy{RequiresPreview: true},
		Initial:  domain.NewZoneDraft,
		Build:    domain.BuildZonePayload,
		Messages: zoneMessages,
	}, gate, func(ctx context.Context, session *domain.Session, payload domain.ZonePayload) error {
		zone, err := svc.Create(ctx, session, &payload)
		if err != nil {
			return err
		}
		list.Append(session, *zone)
		return nil
	})

	detail := NewDetailFlow(cfg, KindZone, workflow.Codec[domain.Zone]{
		Flatten: domain.ZoneDraftOf,
		Inflate: domain.ApplyZoneDraft,
	}, zoneDetailMessages, gate, list, DetailHooks[domain.Zone]{
		Fetch: func(ctx context.Context, session *domain.Session, id string) (domain.Zone, error) {
			z, err := svc.Get(ctx, session, id)
			if err != nil {
				return domain.Zone{}, err
			}
			return *z, nil
		},
		Update: func(ctx context.Context, session *domain.Session, z domain.Zone) (domain.Zone, error) {
			updated, err := svc.Update(ctx, session, z)
			if err != nil {
				return domain.Zone{}, err
			}
			return *updated, nil
		},
		Delete: svc.Delete,
	})

	return &ZoneFlows{Form: form, List: list, Detail: detail}
}

// RiderFlows groups rider creation, the server-paged list and the detail panel.
// Rider forms are not stored because their uploads cannot outlive the request.
type RiderFlows struct {
	List   *ListFlow[domain.Rider]
	Detail *DetailFlow[domain.Rider]
	svc    *RiderService
	gate   workflow.Gate
}

func NewRiderFlows(cfg FlowConfig, gate workflow.Gate, limit int, svc *RiderService) *RiderFlows {
	list := NewServerListFlow(cfg, KindRider, limit, func(ctx context.Context, session *domain.Session, filters map[string]string, page, limit int) (workflow.Page[domain.Rider], error) {
		result, err := svc.List(ctx, session, domain.RiderFilter{
			SearchTerm: strings.TrimSpace(filters["searchTerm"]),
			Email:      strings.TrimSpace(filters["email"]),
		}, page, limit)
		if err != nil {
			return workflow.Page[domain.Rider]{}, err
		}
		return workflow.Page[domain.Rider]{Items: result.Riders, Page: result.Page, TotalPages: result.TotalPages}, nil
	})

	detail := NewDetailFlow(cfg, KindRider, workflow.Codec[domain.Rider]{
		Flatten: domain.RiderDraftOf,
		Inflate: domain.EditRider,
	}, riderDetailMessages, gate, list, DetailHooks[domain.Rider]{
		Update: func(ctx context.Context, session *domain.Session, r domain.Rider) (domain.Rider, error) {
			updated, err := svc.Update(ctx, session, r.ID, domain.RiderPatchOf(r))
			if err != nil {
				return domain.Rider{}, err
			}
			if updated == nil || updated.ID != r.ID {
				return r, nil
			}
			return *updated, nil
		},
	})

	if gate == nil {
		gate = workflow.NewLocalGate()
	}
	return &RiderFlows{List: list, Detail: detail, svc: svc, gate: gate}
}

// Create validates the rider fields and uploads and creates the rider in one
// step. The returned form holds the draft and inline messages to re-render.
func (r *RiderFlows) Create(ctx context.Context, session *domain.Session, fields map[string]string, uploads []domain.Upload) (*workflow.Form[domain.RiderApplication], []domain.Notification, error) {
	wf := workflow.NewFormWorkflow(workflow.Schema[domain.RiderApplication]{
		Kind:    KindRider,
		Initial: domain.NewRiderDraft,
		Build: func(d domain.Draft) (domain.RiderApplication, error) {
			return domain.BuildRiderApplication(d, uploads)
		},
		Messages: riderMessages,
	}, r.gate)

	rec := &workflow.Recorder{}
	form := wf.New(uuid.NewString())
	for _, k := range sortedKeys(fields) {
		if err := wf.SetField(form, k, fields[k]); err != nil {
			return form, rec.Drain(), err
		}
	}

	err := wf.Submit(ctx, form, rec, func(ctx context.Context, app domain.RiderApplication) error {
		rider, err := r.svc.Create(ctx, session, &app)
		if err != nil {
			return err
		}
		r.List.Append(session, *rider)
		return nil
	})
	return form, rec.Drain(), err
}

// SetStatus approves or rejects a rider and patches the list row.
func (r *RiderFlows) SetStatus(ctx context.Context, session *domain.Session, id string, status domain.RiderStatus) (*domain.Rider, error) {
	rider, err := r.svc.UpdateStatus(ctx, session, id, status)
	if err != nil {
		return nil, err
	}
	if rider == nil || rider.ID == "" {
		current, ok := r.List.Find(session, id)
		if !ok {
			return &domain.Rider{ID: id, Status: status}, nil
		}
		current.Status = status
		rider = &current
	}
	r.List.Replace(session, *rider)
	return rider, nil
}

// Update sends a partial field update and patches the list row.
func (r *RiderFlows) Update(ctx context.Context, session *domain.Session, id string, fields map[string]string) (*domain.Rider, error) {
	patch, err := domain.BuildRiderPatch(domain.Draft(fields))
	if err != nil {
		return nil, err
	}
	rider, err := r.svc.Update(ctx, session, id, patch)
	if err != nil {
		return nil, err
	}
	if rider == nil || rider.ID == "" {
		current, ok := r.List.Find(session, id)
		if !ok {
			return &domain.Rider{ID: id}, nil
		}
		merged, err := domain.ApplyRiderDraft(current, domain.Draft(patch))
		if err != nil {
			return nil, err
		}
		rider = &merged
	}
	r.List.Replace(session, *rider)
	return rider, nil
}
