package main

import (
	"context"
	"fmt"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

// runCreate fills a create form, shows the preview when the form asks for one
// and commits once the operator agrees. yes skips the prompt.
func runCreate[P any](ctx context.Context, session *domain.Session, flow *services.FormFlow[P], fields map[string]string, yes bool) error {
	form, err := flow.Open(session)
	if err != nil {
		return err
	}
	if form, _, err = flow.SetFields(ctx, session, form.ID, fields); err != nil {
		return err
	}

	form, notes, err := flow.Submit(ctx, session, form.ID)
	if err != nil {
		if form != nil {
			defer renderInline(env.out, form.Inline)
		}
		return report(notes, err)
	}
	if form.Stage != workflow.StagePreview {
		return report(notes, nil)
	}

	fmt.Fprintln(env.out, titleStyle.Render("Preview"))
	renderDraft(env.out, form.Draft)
	if !yes && !env.confirm(fmt.Sprintf("Create this %s?", flow.Kind())) {
		if _, _, err := flow.Edit(ctx, session, form.ID); err != nil {
			return err
		}
		fmt.Fprintln(env.out, mutedStyle.Render("Nothing was created."))
		return nil
	}

	_, notes, err = flow.Confirm(ctx, session, form.ID)
	return report(notes, err)
}

// runEdit opens one record, applies the fields to its draft and saves.
func runEdit[T workflow.Record](ctx context.Context, session *domain.Session, flow *services.DetailFlow[T], id string, fields map[string]string) (*workflow.Detail[T], error) {
	if _, err := flow.View(ctx, session, id); err != nil {
		return nil, err
	}
	if _, err := flow.Edit(ctx, session); err != nil {
		return nil, err
	}
	if _, err := flow.SetFields(ctx, session, fields); err != nil {
		return nil, err
	}
	d, notes, err := flow.Save(ctx, session)
	return d, report(notes, err)
}

// loadList fetches a list with filters and moves to page when it is past the first.
func loadList[T workflow.Record](ctx context.Context, session *domain.Session, flow *services.ListFlow[T], filters map[string]string, page int) (workflow.View[T], error) {
	view, err := flow.Load(ctx, session, filters)
	if err != nil || page <= 1 {
		return view, err
	}
	return flow.Page(ctx, session, page)
}

func showRecord(title string, d domain.Draft) {
	fmt.Fprintln(env.out, titleStyle.Render(title))
	renderDraft(env.out, d)
}
