package main

import (
	"errors"
	"fmt"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
	"github.com/spf13/cobra"
)

var (
	zoneSet    map[string]string
	zoneYes    bool
	zoneCampus string
	zonePage   int
)

var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Create, list, edit and delete zones",
}

var zoneCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a zone inside a campus",
	Long: `Fills the zone form, shows the preview and creates the zone once you
confirm. campusId is required; "campusctl zone campuses" lists the choices.`,
	RunE: runZoneCreate,
}

var zoneCampusesCmd = &cobra.Command{
	Use:   "campuses",
	Short: "List the campuses a zone can belong to",
	RunE:  runZoneCampuses,
}

var zoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List zones",
	RunE:  runZoneList,
}

var zoneEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change fields of a zone",
	Args:  cobra.ExactArgs(1),
	RunE:  runZoneEdit,
}

var zoneDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a zone",
	Args:  cobra.ExactArgs(1),
	RunE:  runZoneDelete,
}

func init() {
	zoneCreateCmd.Flags().StringToStringVar(&zoneSet, "set", nil, "Form field as key=value (repeatable)")
	zoneCreateCmd.Flags().BoolVarP(&zoneYes, "yes", "y", false, "Create without asking")

	zoneListCmd.Flags().StringVar(&zoneCampus, "campus", "", "Only zones of this campus id")
	zoneListCmd.Flags().IntVar(&zonePage, "page", 1, "Page to show")

	zoneEditCmd.Flags().StringToStringVar(&zoneSet, "set", nil, "Field as key=value (repeatable)")
	zoneEditCmd.MarkFlagRequired("set")

	zoneDeleteCmd.Flags().BoolVarP(&zoneYes, "yes", "y", false, "Delete without asking")

	zoneCmd.AddCommand(zoneCreateCmd, zoneCampusesCmd, zoneListCmd, zoneEditCmd, zoneDeleteCmd)
}

func runZoneCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	return runCreate(ctx, session, env.zone.Form, zoneSet, zoneYes)
}

func runZoneCampuses(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	options, err := env.campuses.Options(ctx, session)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(options))
	for _, o := range options {
		rows = append(rows, []string{o.ID, o.Name})
	}
	fmt.Fprintln(env.out, renderTable([]string{"ID", "Campus"}, rows))
	return nil
}

func runZoneList(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	view, err := loadList(ctx, session, env.zone.List, map[string]string{"campusId": zoneCampus}, zonePage)
	if err != nil {
		return err
	}
	renderList(env.out, "Zones", view, zoneHeaders, zoneRows)
	return nil
}

func runZoneEdit(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	d, err := runEdit(ctx, session, env.zone.Detail, args[0], zoneSet)
	if err != nil {
		return err
	}
	if d != nil && d.Record != nil {
		showRecord(d.Record.Name, domain.ZoneDraftOf(*d.Record))
	}
	return nil
}

func runZoneDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	session, err := env.session()
	if err != nil {
		return err
	}
	if _, err := env.zone.Detail.View(ctx, session, args[0]); err != nil {
		return err
	}

	var confirm workflow.Confirmer = workflow.ConfirmFunc(env.confirm)
	if zoneYes {
		confirm = workflow.Confirmed(true)
	}
	_, notes, err := env.zone.Detail.Delete(ctx, session, confirm)
	if errors.Is(err, workflow.ErrNotConfirmed) {
		fmt.Fprintln(env.out, mutedStyle.Render("Nothing was deleted."))
		return nil
	}
	return report(notes, err)
}
