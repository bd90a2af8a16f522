package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roasbeef/nowhere/internal/persistence"
	"github.com/roasbeef/nowhere/internal/tui"
)

var (
	artifactsClaim string
	artifactsQuery string
	artifactsLimit int
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "List or search artifacts gathered for a claim",
	RunE:  runArtifacts,
}

func init() {
	artifactsCmd.Flags().StringVar(&artifactsClaim, "claim", "",
		"Claim ID, or unambiguous ID prefix, to inspect")
	artifactsCmd.Flags().StringVar(&artifactsQuery, "query", "",
		"Full-text search query (empty lists every artifact for the claim)")
	artifactsCmd.Flags().IntVar(&artifactsLimit, "limit", 20,
		"Maximum number of artifacts to display")
	artifactsCmd.MarkFlagRequired("claim")
}

func runArtifacts(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	claimID, err := resolveClaim(ctx, store, artifactsClaim)
	if err != nil {
		return err
	}

	artifacts, err := store.SearchArtifacts(ctx, claimID, artifactsQuery, artifactsLimit)
	if err != nil {
		return err
	}

	tui.NewScreen(os.Stdout).RenderArtifacts(claimID.String(), artifacts)
	return nil
}

// resolveClaim accepts either a full UUID or an unambiguous prefix of one,
// matching the shortened form the claims command displays.
func resolveClaim(ctx context.Context, store interface {
	ListClaims(ctx context.Context) ([]persistence.Claim, error)
}, ref string) (uuid.UUID, error) {

	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	claims, err := store.ListClaims(ctx)
	if err != nil {
		return uuid.UUID{}, err
	}

	var match *persistence.Claim
	for i, c := range claims {
		if strings.HasPrefix(c.ID.String(), ref) {
			if match != nil {
				return uuid.UUID{}, fmt.Errorf("claim prefix %q is ambiguous", ref)
			}
			match = &claims[i]
		}
	}
	if match == nil {
		return uuid.UUID{}, fmt.Errorf("no claim matches %q", ref)
	}
	return match.ID, nil
}
