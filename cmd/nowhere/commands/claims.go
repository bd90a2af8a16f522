package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/roasbeef/nowhere/internal/tui"
)

var claimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "List claims under investigation",
	RunE:  runClaims,
}

func runClaims(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	claims, err := store.ListClaims(ctx)
	if err != nil {
		return err
	}

	views := make([]tui.ClaimView, len(claims))
	for i, c := range claims {
		count, err := store.CountArtifacts(ctx, c.ID)
		if err != nil {
			return err
		}
		views[i] = tui.ClaimView{
			ID:            c.ID.String(),
			Text:          c.Text,
			ArtifactCount: count,
		}
	}

	tui.NewScreen(os.Stdout).RenderClaims(views)
	return nil
}
