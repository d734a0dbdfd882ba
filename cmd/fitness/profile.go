package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pribylovaa/go-group-fitness/internal/client/onboarding"
	rest "github.com/pribylovaa/go-group-fitness/pkg/api"
)

var (
	sportOptions        = []string{"running", "cycling"}
	paceOptions         = []string{"casual", "moderate", "fast"}
	rideTypeOptions     = []string{"casual", "drop_ride", "competitive"}
	availabilityOptions = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)

// wizardValues - строковые значения полей формы до разбора.
type wizardValues struct {
	name, bio, location string
	lat, lng            string
	sports              []string
	pace, rideType      string
	distMin, distMax    string
	availability        []string
}

// stepForm строит форму для текущего шага анкеты.
func stepForm(step onboarding.Step, v *wizardValues) *huh.Form {
	switch step {
	case onboarding.StepAbout:
		return huh.NewForm(huh.NewGroup(
			huh.NewNote().Title("About you").Description("Step 1 of 3"),
			huh.NewInput().Title("Name").Value(&v.name).Validate(validateRequired),
			huh.NewText().Title("Bio").Description("optional").Value(&v.bio),
			huh.NewInput().Title("City or area").Description("optional").Value(&v.location),
			huh.NewInput().Title("Latitude").Description("optional").Value(&v.lat).Validate(validateOptionalFloat),
			huh.NewInput().Title("Longitude").Description("optional").Value(&v.lng).Validate(validateOptionalFloat),
		))
	case onboarding.StepSports:
		return huh.NewForm(huh.NewGroup(
			huh.NewNote().Title("Sports").Description("Step 2 of 3"),
			huh.NewMultiSelect[string]().Title("What do you do?").Options(huh.NewOptions(sportOptions...)...).Value(&v.sports),
			huh.NewSelect[string]().Title("Preferred pace").Options(optionalOptions(paceOptions)...).Value(&v.pace),
			huh.NewSelect[string]().Title("Ride type").Description("for cycling").Options(optionalOptions(rideTypeOptions)...).Value(&v.rideType),
		))
	default:
		return huh.NewForm(huh.NewGroup(
			huh.NewNote().Title("Schedule").Description("Step 3 of 3"),
			huh.NewInput().Title("Shortest distance, m").Description("optional").Value(&v.distMin).Validate(validateOptionalInt),
			huh.NewInput().Title("Longest distance, m").Description("optional").Value(&v.distMax).Validate(validateOptionalInt),
			huh.NewMultiSelect[string]().Title("When are you free?").Options(huh.NewOptions(availabilityOptions...)...).Value(&v.availability),
		))
	}
}

// optionalOptions добавляет вариант "не указано" с пустым значением.
func optionalOptions(values []string) []huh.Option[string] {
	return append([]huh.Option[string]{huh.NewOption("not set", "")}, huh.NewOptions(values...)...)
}

func (v *wizardValues) apply(f *onboarding.Fields) {
	f.Name = v.name
	f.Bio = v.bio
	f.LocationName = v.location
	f.LocationLat = parseOptionalFloat(v.lat)
	f.LocationLng = parseOptionalFloat(v.lng)
	f.Sports = v.sports
	f.PreferredPace = v.pace
	f.RideType = v.rideType
	f.DistanceMin = parseOptionalInt32(v.distMin)
	f.DistanceMax = parseOptionalInt32(v.distMax)
	f.Availability = v.availability
}

// runWizard проводит пользователя по шагам и отправляет анкету.
// При ошибке отправки предлагает повторить, поля сохраняются.
func runWizard(ctx context.Context, a *app) error {
	w := onboarding.New(a.client, a.flow)
	var v wizardValues

	for {
		if err := stepForm(w.Step(), &v).Run(); err != nil {
			return err
		}
		w.Update(v.apply)

		if !w.IsLast() {
			w.Next()
			continue
		}

		resp, err := w.Submit(ctx)
		if err == nil {
			success(stdout, "%s", resp.Message)
			return nil
		}

		warn(stdout, "Could not save your answers: %s", err)

		retry := true
		if err := huh.NewConfirm().Title("Try again?").Value(&retry).Run(); err != nil {
			return err
		}
		if !retry {
			return err
		}
	}
}

func newOnboardingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "onboarding",
		Short: "Fill in your profile and preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.ctx(cmd.Context())
			if _, err := a.restore(ctx); err != nil {
				return err
			}

			a.flow.OnboardingStarted()
			return runWizard(ctx, a)
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile and preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.UserMe(a.ctx(cmd.Context()))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderProfile(&out.Profile))
			if out.Preferences != nil {
				fmt.Fprintln(cmd.OutOrStdout(), renderPreferences(out.Preferences))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Muted.Render("No preferences yet, run `fitness onboarding`."))
			}
			return nil
		},
	}

	cmd.AddCommand(newProfileUpdateCmd(a), newPreferencesUpdateCmd(a))

	return cmd
}

func newProfileUpdateCmd(a *app) *cobra.Command {
	var name, bio, location string
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; only passed flags are sent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in rest.ProfileUpdate
			flags := cmd.Flags()

			if flags.Changed("name") {
				in.Name = &name
			}
			if flags.Changed("bio") {
				in.Bio = &bio
			}
			if flags.Changed("location") {
				in.LocationName = &location
			}
			if flags.Changed("lat") {
				in.LocationLat = &lat
			}
			if flags.Changed("lng") {
				in.LocationLng = &lng
			}

			p, err := a.client.UpdateProfile(a.ctx(cmd.Context()), in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderProfile(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&bio, "bio", "", "about you")
	cmd.Flags().StringVar(&location, "location", "", "city or area")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")

	return cmd
}

func newPreferencesUpdateCmd(a *app) *cobra.Command {
	var sports, availability []string
	var pace, rideType string
	var distMin, distMax int32

	cmd := &cobra.Command{
		Use:   "preferences",
		Short: "Change preferences; only passed flags are sent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in rest.PreferencesUpdate
			flags := cmd.Flags()

			if flags.Changed("sports") {
				in.Sports = nonNil(sports)
			}
			if flags.Changed("availability") {
				in.Availability = nonNil(availability)
			}
			if flags.Changed("pace") {
				in.PreferredPace = &pace
			}
			if flags.Changed("ride-type") {
				in.RideType = &rideType
			}
			if flags.Changed("distance-min") {
				in.DistanceRangeMin = &distMin
			}
			if flags.Changed("distance-max") {
				in.DistanceRangeMax = &distMax
			}

			p, err := a.client.UpdatePreferences(a.ctx(cmd.Context()), in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderPreferences(p))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sports, "sports", nil, "sports, comma separated")
	cmd.Flags().StringSliceVar(&availability, "availability", nil, "weekdays, comma separated")
	cmd.Flags().StringVar(&pace, "pace", "", "casual, moderate or fast")
	cmd.Flags().StringVar(&rideType, "ride-type", "", "casual, drop_ride or competitive")
	cmd.Flags().Int32Var(&distMin, "distance-min", 0, "shortest distance, m")
	cmd.Flags().Int32Var(&distMax, "distance-max", 0, "longest distance, m")

	return cmd
}

// nonNil отличает "очистить" (пустой слайс) от "не менять" (nil).
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func renderProfile(p *rest.Profile) string {
	return renderTable("Profile", []kv{
		{"Email", p.Email},
		{"Name", deref(p.Name)},
		{"Bio", deref(p.Bio)},
		{"Location", deref(p.LocationName)},
		{"Latitude", deref(p.LocationLat)},
		{"Longitude", deref(p.LocationLng)},
		{"Member since", p.CreatedAt.Format("2006-01-02")},
	})
}

func renderPreferences(p *rest.Preferences) string {
	return renderTable("Preferences", []kv{
		{"Sports", strings.Join(p.Sports, ", ")},
		{"Pace", deref(p.PreferredPace)},
		{"Ride type", deref(p.RideType)},
		{"Distance min", deref(p.DistanceRangeMin)},
		{"Distance max", deref(p.DistanceRangeMax)},
		{"Availability", strings.Join(p.Availability, ", ")},
	})
}
