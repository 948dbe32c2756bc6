package main

import (
	"fmt"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/spf13/cobra"
)

var (
	campusSet   map[string]string
	campusYes   bool
	campusName  string
	campusMail  string
	campusPage  int
	campusZones bool
)

var campusCmd = &cobra.Command{
	Use:   "campus",
	Short: "Create, list and edit campuses",
}

var campusCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a campus",
	Long: `Fills the campus form, shows the preview and creates the campus once
you confirm. Boundary points are set as coordinates.<i>.lat and
coordinates.<i>.lng for i in 0..3 (left, right, top, bottom).

Example:
  campusctl campus create --set name=North --set description="Main site" \
    --set eduMailExtension=uni.edu --set averageHalfDistance=1.5 \
    --set coordinates.0.lat=23.81 --set coordinates.0.lng=90.41 ...`,
	RunE: runCampusCreate,
}

var campusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campuses",
	RunE:  runCampusList,
}

var campusViewCmd = &cobra.Command{
	Use:   "view [id]",
	Short: "Show one campus",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampusView,
}

var campusEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change fields of a campus",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampusEdit,
}

func init() {
	campusCreateCmd.Flags().StringToStringVar(&campusSet, "set", nil, "Form field as key=value (repeatable)")
	campusCreateCmd.Flags().BoolVarP(&campusYes, "yes", "y", false, "Create without asking")

	campusListCmd.Flags().StringVar(&campusName, "name", "", "Filter by name")
	campusListCmd.Flags().StringVar(&campusMail, "mail", "", "Filter by edu mail extension")
	campusListCmd.Flags().IntVar(&campusPage, "page", 1, "Page to show")

	campusViewCmd.Flags().BoolVar(&campusZones, "zones", false, "Also list the campus zones")

	campusEditCmd.Flags().StringToStringVar(&campusSet, "set", nil, "Field as key=value (repeatable)")
	campusEditCmd.MarkFlagRequired("set")

	campusCmd.AddCommand(campusCreateCmd, campusListCmd, campusViewCmd, campusEditCmd)
}

func runCampusCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	return runCreate(ctx, session, env.campus.Form, campusSet, campusYes)
}

func runCampusList(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	view, err := loadList(ctx, session, env.campus.List, map[string]string{
		"name":             campusName,
		"eduMailExtension": campusMail,
	}, campusPage)
	if err != nil {
		return err
	}
	renderList(env.out, "Campuses", view, campusHeaders, campusRows)
	return nil
}

func runCampusView(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	d, err := env.campus.Detail.View(ctx, session, args[0])
	if err != nil {
		return err
	}
	c := *d.Record
	showRecord(c.Name, domain.CampusDraftOf(c))
	fmt.Fprintln(env.out, mutedStyle.Render(active(c.IsActive)+"  "+quad(c.Coordinates)))
	if campusZones && len(c.Zones) > 0 {
		fmt.Fprintln(env.out, renderTable(zoneHeaders, zoneRows(c.Zones)))
	}
	return nil
}

func runCampusEdit(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	d, err := runEdit(ctx, session, env.campus.Detail, args[0], campusSet)
	if err != nil {
		return err
	}
	if d != nil && d.Record != nil {
		showRecord(d.Record.Name, domain.CampusDraftOf(*d.Record))
	}
	return nil
}
