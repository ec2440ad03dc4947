package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	campus "github.com/zjrosen/campus/internal/campus/domain"
	"github.com/zjrosen/campus/internal/campus/application"
	"github.com/zjrosen/campus/internal/log"
	"github.com/zjrosen/campus/internal/presentation"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Populate a fresh registry and print every list",
	Long: `Build a fresh registry with a student, an instructor, a course and a
department, link them, and print the resulting lists.

Examples:
  campus demo
  campus demo --format json
  campus demo --kind courses --format markdown`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringP("format", "f", "text",
		"output format: "+strings.Join(formatNames(), ", "))
	demoCmd.Flags().StringP("kind", "k", "",
		"print only one list: students, instructors, courses or departments")
	rootCmd.AddCommand(demoCmd)
}

func formatNames() []string {
	formats := presentation.Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return names
}

func runDemo(cmd *cobra.Command, _ []string) error {
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := presentation.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	kindStr, _ := cmd.Flags().GetString("kind")
	var kind campus.EntityKind
	if kindStr != "" {
		var ok bool
		kind, ok = campus.ParseKind(strings.ToLower(kindStr))
		if !ok {
			return fmt.Errorf("unknown kind %q", kindStr)
		}
	}

	svc := application.NewService(nil)
	defer svc.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return writeDemo(ctx, svc, cmd.OutOrStdout(), format, kind, kindStr != "")
}

// writeDemo seeds svc and writes the requested lists to w.
func writeDemo(ctx context.Context, svc *application.Service, w io.Writer, format presentation.Format, kind campus.EntityKind, onlyKind bool) error {
	if err := seedDemo(ctx, svc); err != nil {
		return err
	}

	var lists application.Lists
	var err error
	if onlyKind {
		lists, err = svc.Project(ctx, kind)
	} else {
		lists, err = svc.ProjectAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("projecting lists: %w", err)
	}

	return presentation.NewFormatter(w, format).FormatLists(lists)
}

// seedDemo runs the Ann/Algorithms walkthrough with an instructor and a
// department added.
func seedDemo(ctx context.Context, svc *application.Service) error {
	ann := svc.CreateStudent(ctx, "Ann", 20, 1)
	algorithms := svc.CreateCourse(ctx, 100, "Algorithms")
	bob := svc.CreateInstructor(ctx, "Bob", 45, 5000)
	cs := svc.CreateDepartment(ctx, "CS")

	if err := svc.RegisterStudentForCourse(ctx, ann.ID, algorithms.ID); err != nil {
		return err
	}
	if err := svc.AssignInstructorToCourse(ctx, bob.ID, algorithms.ID); err != nil {
		return err
	}
	if err := svc.AddCourseToDepartment(ctx, cs.ID, algorithms.ID); err != nil {
		return err
	}
	log.Debug(log.CatRegistry, "Demo registry seeded")
	return nil
}
