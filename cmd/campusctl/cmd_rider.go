package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/spf13/cobra"
)

var (
	riderSet    map[string]string
	riderDocs   map[string]string
	riderSearch string
	riderEmail  string
	riderPage   int
)

var riderCmd = &cobra.Command{
	Use:   "rider",
	Short: "Create, list and review riders",
}

var riderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a rider with all seven documents",
	Long: `Creates a rider in one step. Every document kind must be given once:
nationalIdFront, nationalIdBack, universityIdFront, universityIdBack,
drivingLicense, vehicleLicense and numberPlate.

Example:
  campusctl rider create --set firstName=Sam --set lastName=Roy \
    --set bikeRegistrationNumber=DHK-1234 --set bikeModel=Pulsar \
    --doc nationalIdFront=./nid-front.jpg --doc nationalIdBack=./nid-back.jpg ...`,
	RunE: runRiderCreate,
}

var riderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List riders",
	RunE:  runRiderList,
}

var riderApproveCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Approve a rider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRiderStatus(cmd, args[0], domain.RiderApproved, "Rider approved!")
	},
}

var riderRejectCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject a rider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRiderStatus(cmd, args[0], domain.RiderRejected, "Rider rejected.")
	},
}

var riderUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change fields of a rider",
	Args:  cobra.ExactArgs(1),
	RunE:  runRiderUpdate,
}

func init() {
	riderCreateCmd.Flags().StringToStringVar(&riderSet, "set", nil, "Form field as key=value (repeatable)")
	riderCreateCmd.Flags().StringToStringVar(&riderDocs, "doc", nil, "Document as kind=path (repeatable)")

	riderListCmd.Flags().StringVar(&riderSearch, "search", "", "Search term")
	riderListCmd.Flags().StringVar(&riderEmail, "email", "", "Filter by email")
	riderListCmd.Flags().IntVar(&riderPage, "page", 1, "Page to show")

	riderUpdateCmd.Flags().StringToStringVar(&riderSet, "set", nil, "Field as key=value (repeatable)")
	riderUpdateCmd.MarkFlagRequired("set")

	riderCmd.AddCommand(riderCreateCmd, riderListCmd, riderApproveCmd, riderRejectCmd, riderUpdateCmd)
}

// openDocuments opens every --doc file. The caller closes them.
func openDocuments(docs map[string]string) ([]domain.Upload, []*os.File, error) {
	uploads := make([]domain.Upload, 0, len(docs))
	files := make([]*os.File, 0, len(docs))
	for kind, path := range docs {
		f, err := os.Open(path)
		if err != nil {
			closeAll(files)
			return nil, nil, fmt.Errorf("open %s: %w", kind, err)
		}
		files = append(files, f)
		uploads = append(uploads, domain.Upload{
			Kind:     domain.DocumentKind(kind),
			Filename: filepath.Base(path),
			Content:  f,
		})
	}
	return uploads, files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}

func runRiderCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	uploads, files, err := openDocuments(riderDocs)
	if err != nil {
		return err
	}
	defer closeAll(files)

	form, notes, err := env.rider.Create(ctx, session, riderSet, uploads)
	if err != nil && form != nil {
		defer renderInline(env.out, form.Inline)
	}
	return report(notes, err)
}

func runRiderList(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	view, err := loadList(ctx, session, env.rider.List, map[string]string{
		"searchTerm": riderSearch,
		"email":      riderEmail,
	}, riderPage)
	if err != nil {
		return err
	}
	renderList(env.out, "Riders", view, riderHeaders, riderRows)
	return nil
}

func runRiderStatus(cmd *cobra.Command, id string, status domain.RiderStatus, done string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	if _, err := env.rider.SetStatus(ctx, session, id, status); err != nil {
		return err
	}
	fmt.Fprintln(env.out, successStyle.Render(done))
	return nil
}

func runRiderUpdate(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	rider, err := env.rider.Update(ctx, session, args[0], riderSet)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.out, successStyle.Render("Rider updated successfully!"))
	if rider.FirstName != "" {
		showRecord(rider.FirstName+" "+rider.LastName, domain.RiderDraftOf(*rider))
	}
	return nil
}
