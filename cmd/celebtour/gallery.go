package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/session"
	"github.com/mark3labs/celebtour/internal/template"
)

var errNoSuchTour = errors.New("no such tour")

var galleryCmd = &cobra.Command{
	Use:   "gallery [session]",
	Short: "List finished tours",
	Long: `List every tour whose video was generated, most recent first.

With a session ID, show that tour in detail: the guide, the car, the
video and how often it was shared.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGallery,
}

func runGallery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Persist {
		return fmt.Errorf("tour history is disabled (persist: false)")
	}

	emb, store := openStore(cmd.Context(), cfg)
	if store == nil {
		return fmt.Errorf("event store unavailable in %s", cfg.DataDir)
	}
	defer func() { _ = emb.Close() }()

	if len(args) == 1 {
		cat, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		st, err := store.LoadState(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load tour %s: %w", args[0], err)
		}
		return printTour(cmd.OutOrStdout(), st, cat, time.Now())
	}

	tours, err := store.LoadGallery(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load tours: %w", err)
	}
	printGallery(cmd.OutOrStdout(), tours, time.Now())
	return nil
}

func printGallery(w io.Writer, tours []*session.State, now time.Time) {
	if len(tours) == 0 {
		fmt.Fprintln(w, "No finished tours yet.")
		return
	}
	for _, t := range tours {
		fmt.Fprintf(w, "%s  %s with %s  (%s)\n", t.Session, t.Car, t.Celebrity, template.TimeAgo(now.Sub(t.FinishedAt)))
		if t.ShareURL != "" {
			fmt.Fprintf(w, "    %s\n", t.ShareURL)
		}
	}
}

// printTour writes one tour's details. Guide and car details come from the
// catalog when the recorded ids are still in it.
func printTour(w io.Writer, st *session.State, cat *catalog.Catalog, now time.Time) error {
	if st.StartedAt.IsZero() && !st.Finished() {
		return fmt.Errorf("%w: %s", errNoSuchTour, st.Session)
	}

	fmt.Fprintf(w, "Tour %s\n", st.Session)
	if !st.StartedAt.IsZero() {
		fmt.Fprintf(w, "  Started:   %s\n", template.TimeAgo(now.Sub(st.StartedAt)))
	}
	if st.Avatar != "" {
		fmt.Fprintf(w, "  Avatar:    %s\n", st.Avatar)
	}

	if cel, ok := cat.Celebrity(st.CelebrityID); ok {
		fmt.Fprintf(w, "  Guide:     %s, %s (%.1f)\n", cel.Name, cel.Specialty, cel.Rating)
	} else if st.Celebrity != "" {
		fmt.Fprintf(w, "  Guide:     %s\n", st.Celebrity)
	}
	if car, ok := cat.Car(st.CarID); ok {
		fmt.Fprintf(w, "  Car:       %s, %s (%s, %s, %s)\n", car.Name, car.Type, car.Engine, car.Horsepower, car.Acceleration)
	} else if st.Car != "" {
		fmt.Fprintf(w, "  Car:       %s\n", st.Car)
	}

	if !st.Finished() {
		fmt.Fprintln(w, "  Video:     not generated")
		return nil
	}
	fmt.Fprintf(w, "  Video:     %s (%s)\n", st.Video, template.TimeAgo(now.Sub(st.FinishedAt)))
	if st.ShareURL != "" {
		fmt.Fprintf(w, "  Link:      %s\n", st.ShareURL)
	}
	fmt.Fprintf(w, "  Shares:    %d\n", st.Shares)
	fmt.Fprintf(w, "  Downloads: %d\n", st.Downloads)
	return nil
}
