package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pribylovaa/go-group-fitness/internal/client/api"
	rest "github.com/pribylovaa/go-group-fitness/pkg/api"
)

const startLayout = "2006-01-02 15:04"

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Group events",
	}

	cmd.AddCommand(
		newEventsListCmd(a),
		newEventsGetCmd(a),
		newEventsCreateCmd(a),
		newEventsDeleteCmd(a),
		newEventsUploadGPSCmd(a),
	)

	return cmd
}

func newEventsListCmd(a *app) *cobra.Command {
	var p api.ListEventsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.client.ListEvents(a.ctx(cmd.Context()), p)
			if err != nil {
				return err
			}

			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Muted.Render("No events."))
				return nil
			}

			for _, ev := range list {
				fmt.Fprintln(cmd.OutOrStdout(), eventLine(ev))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&p.SportType, "sport", "", "filter by sport type")
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "page size (server default 50, max 100)")
	cmd.Flags().IntVar(&p.Offset, "offset", 0, "page offset")

	return cmd
}

func newEventsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ev, err := a.client.GetEvent(a.ctx(cmd.Context()), id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderEvent(ev))
			return nil
		},
	}
}

func newEventsCreateCmd(a *app) *cobra.Command {
	var (
		in    rest.CreateEventRequest
		start string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event; missing fields are asked interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runForm(eventForm(&in, &start)); err != nil {
				return err
			}

			at, err := time.ParseInLocation(startLayout, start, time.Local)
			if err != nil {
				return fmt.Errorf("start must look like %q", startLayout)
			}
			in.StartAt = at

			ev, err := a.client.CreateEvent(a.ctx(cmd.Context()), in)
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Event #%d created.", ev.ID)
			fmt.Fprintln(cmd.OutOrStdout(), renderEvent(ev))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "event name")
	cmd.Flags().StringVar(&in.SportType, "sport", "", "sport type")
	cmd.Flags().StringVar(&in.EventType, "type", "", "event type, e.g. training or race")
	cmd.Flags().StringVar(&in.Access, "access", "", "public, private or invite_only")
	cmd.Flags().StringVar(&start, "start", "", "start time, "+startLayout)
	cmd.Flags().Int32Var(&in.Distance, "distance", 0, "distance, m")

	return cmd
}

// eventForm спрашивает обязательные поля, не переданные флагами.
func eventForm(in *rest.CreateEventRequest, start *string) *huh.Form {
	var fields []huh.Field

	if in.Name == "" {
		fields = append(fields, huh.NewInput().Title("Name").Value(&in.Name).Validate(validateRequired))
	}
	if in.SportType == "" {
		fields = append(fields, huh.NewSelect[string]().Title("Sport").Options(huh.NewOptions(sportOptions...)...).Value(&in.SportType))
	}
	if in.EventType == "" {
		fields = append(fields, huh.NewSelect[string]().Title("Type").Options(huh.NewOptions("training", "race", "social")...).Value(&in.EventType))
	}
	if in.Access == "" {
		fields = append(fields, huh.NewSelect[string]().Title("Access").Options(huh.NewOptions("public", "private", "invite_only")...).Value(&in.Access))
	}
	if *start == "" {
		fields = append(fields, huh.NewInput().
			Title("Start").
			Description(startLayout).
			Value(start).
			Validate(func(s string) error {
				_, err := time.ParseInLocation(startLayout, s, time.Local)
				return err
			}))
	}

	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

func newEventsDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete your event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				if err := huh.NewConfirm().Title(fmt.Sprintf("Delete event #%d?", id)).Value(&yes).Run(); err != nil {
					return err
				}
				if !yes {
					return nil
				}
			}

			if err := a.client.DeleteEvent(a.ctx(cmd.Context()), id); err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Event #%d deleted.", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func newEventsUploadGPSCmd(a *app) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload-gps <id> <file>",
		Short: "Attach a GPS track to your event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			st, err := f.Stat()
			if err != nil {
				return err
			}

			if contentType == "" {
				contentType = gpsContentType(args[1])
			}

			ctx := a.ctx(cmd.Context())

			presign, err := a.client.GPSPresign(ctx, id, contentType, st.Size())
			if err != nil {
				return err
			}

			if err := a.client.UploadPresigned(ctx, presign, f, st.Size()); err != nil {
				return err
			}

			ev, err := a.client.GPSConfirm(ctx, id, presign.FileKey)
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "GPS track attached to event #%d.", ev.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "override the detected content type")

	return cmd
}

// gpsContentType угадывает тип по расширению; .gpx и .kml известны заранее.
func gpsContentType(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gpx":
		return "application/gpx+xml"
	case ".kml":
		return "application/vnd.google-earth.kml+xml"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event id %q", s)
	}
	return id, nil
}

func eventLine(ev rest.GroupEvent) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Muted.Width(6).Render(fmt.Sprintf("#%d", ev.ID)),
		styles.Key.Render(ev.StartAt.Local().Format(startLayout)),
		styles.Title.Width(12).Render(ev.SportType),
		ev.Name,
	)
}

func renderEvent(ev *rest.GroupEvent) string {
	distance := ""
	if ev.Distance > 0 {
		distance = strconv.Itoa(int(ev.Distance)) + " m"
	}

	return renderTable(ev.Name, []kv{
		{"ID", strconv.FormatInt(ev.ID, 10)},
		{"Sport", ev.SportType},
		{"Type", ev.EventType},
		{"Access", ev.Access},
		{"Start", ev.StartAt.Local().Format(startLayout)},
		{"Distance", distance},
		{"Latitude", deref(ev.Lat)},
		{"Longitude", deref(ev.Lng)},
		{"GPS track", deref(ev.GPSFileLink)},
		{"Created by", ev.CreatedBy},
	})
}

// listLatest - первая страница ленты на главном экране.
var listLatest = api.ListEventsParams{Limit: 10}
