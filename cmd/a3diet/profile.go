package a3diet

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the health profile",
}

var (
	profileAge            int
	profileGender         string
	profileHeight         float64
	profileWeight         float64
	profileActivity       string
	profileGoal           string
	profileConditions     []string
	profileAllergies      []string
	profileDiet           string
	profileCuisines       []string
	profileTargetWeight   float64
	profileTargetDate     string
	profileBloodPressure  string
	profileFastingGlucose float64
	profileHbA1c          float64
	profileCholesterol    float64
	profileTriglycerides  float64
	profileHDL            float64
	profileLDL            float64
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the health profile (replaces the stored one)",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ProfileInput{
			FastingGlucose:    changedFloat(cmd, "fasting-glucose", profileFastingGlucose),
			HbA1c:             changedFloat(cmd, "hba1c", profileHbA1c),
			TotalCholesterol:  changedFloat(cmd, "cholesterol", profileCholesterol),
			Triglycerides:     changedFloat(cmd, "triglycerides", profileTriglycerides),
			HDLCholesterol:    changedFloat(cmd, "hdl", profileHDL),
			LDLCholesterol:    changedFloat(cmd, "ldl", profileLDL),
			BloodPressure:     profileBloodPressure,
			KnownConditions:   profileConditions,
			Allergies:         profileAllergies,
			DietPreference:    profileDiet,
			CuisinePreference: profileCuisines,
			HeightCM:          profileHeight,
			WeightKG:          profileWeight,
			Age:               profileAge,
			Gender:            profileGender,
			ActivityLevel:     profileActivity,
			Goal:              profileGoal,
			TargetWeightKG:    changedFloat(cmd, "target-weight", profileTargetWeight),
			TargetDate:        profileTargetDate,
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			if _, err := service.SaveProfile(sqldb, user.ID, in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Health profile saved")
			return nil
		})
	},
}

var profileShowJSON bool

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the health profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, user model.User) error {
			p, err := service.GetProfile(sqldb, user.ID)
			if err != nil {
				return err
			}
			if profileShowJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			if p == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No health profile for user %d\n", user.ID)
				return nil
			}
			printProfile(cmd.OutOrStdout(), *p)
			return nil
		})
	},
}

func printProfile(w io.Writer, p model.HealthProfile) {
	fmt.Fprintf(w, "Age: %d\n", p.Age)
	fmt.Fprintf(w, "Gender: %s\n", orDash(p.Gender))
	fmt.Fprintf(w, "Height: %.1f cm\n", p.HeightCM)
	fmt.Fprintf(w, "Weight: %.1f kg\n", p.WeightKG)
	fmt.Fprintf(w, "Activity: %s\n", orDash(p.ActivityLevel))
	fmt.Fprintf(w, "Goal: %s\n", orDash(p.Goal))
	fmt.Fprintf(w, "Target weight: %s kg\n", formatOptional(p.TargetWeightKG))
	fmt.Fprintf(w, "Target date: %s\n", orDash(p.TargetDate))
	fmt.Fprintf(w, "Diet preference: %s\n", orDash(p.DietPreference))
	fmt.Fprintf(w, "Conditions: %s\n", orDash(strings.Join(p.KnownConditions, ", ")))
	fmt.Fprintf(w, "Allergies: %s\n", orDash(strings.Join(p.Allergies, ", ")))
	fmt.Fprintf(w, "Cuisines: %s\n", orDash(strings.Join(p.CuisinePreference, ", ")))
	fmt.Fprintf(w, "Blood pressure: %s\n", orDash(p.BloodPressure))
	fmt.Fprintf(w, "Fasting glucose: %s\n", formatOptional(p.FastingGlucose))
	fmt.Fprintf(w, "HbA1c: %s\n", formatOptional(p.HbA1c))
	fmt.Fprintf(w, "Total cholesterol: %s\n", formatOptional(p.TotalCholesterol))
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	f := profileSetCmd.Flags()
	f.IntVar(&profileAge, "age", 0, "Age in years")
	f.StringVar(&profileGender, "gender", "", "male|female")
	f.Float64Var(&profileHeight, "height", 0, "Height in cm")
	f.Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	f.StringVar(&profileActivity, "activity", "", "sedentary|light|moderate|active|very_active")
	f.StringVar(&profileGoal, "goal", "", "maintain|weight_loss|aggressive_loss|weight_gain|muscle_gain")
	f.StringSliceVar(&profileConditions, "condition", nil, "Known condition (repeatable)")
	f.StringSliceVar(&profileAllergies, "allergy", nil, "Allergy (repeatable)")
	f.StringVar(&profileDiet, "diet", "", "Diet preference, e.g. vegetarian, vegan, eggetarian")
	f.StringSliceVar(&profileCuisines, "cuisine", nil, "Preferred cuisine (repeatable)")
	f.Float64Var(&profileTargetWeight, "target-weight", 0, "Target weight in kg")
	f.StringVar(&profileTargetDate, "target-date", "", "Target date YYYY-MM-DD")
	f.StringVar(&profileBloodPressure, "blood-pressure", "", "Blood pressure, e.g. 130/85")
	f.Float64Var(&profileFastingGlucose, "fasting-glucose", 0, "Fasting glucose mg/dL")
	f.Float64Var(&profileHbA1c, "hba1c", 0, "HbA1c %")
	f.Float64Var(&profileCholesterol, "cholesterol", 0, "Total cholesterol mg/dL")
	f.Float64Var(&profileTriglycerides, "triglycerides", 0, "Triglycerides mg/dL")
	f.Float64Var(&profileHDL, "hdl", 0, "HDL cholesterol mg/dL")
	f.Float64Var(&profileLDL, "ldl", 0, "LDL cholesterol mg/dL")

	profileShowCmd.Flags().BoolVar(&profileShowJSON, "json", false, "Output as JSON")
}
