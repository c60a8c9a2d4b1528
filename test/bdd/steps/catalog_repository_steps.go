package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/starroute-go/internal/application/session"
	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/test/helpers"
)

type catalogRepositoryContext struct {
	ctx     context.Context
	repo    *persistence.GormCatalogRepository
	seeded  bool
	session *session.Session
}

func (cc *catalogRepositoryContext) reset() {
	cc.ctx = context.Background()
	cc.repo = nil
	cc.seeded = false
	cc.session = nil
}

// Given steps

func (cc *catalogRepositoryContext) anEmptyCatalogDatabase() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	cc.repo = persistence.NewGormCatalogRepository(helpers.SharedTestDB)
	return nil
}

func (cc *catalogRepositoryContext) theBuiltInCatalogIsSeeded() error {
	return cc.repo.Save(cc.ctx, catalog.Builtin())
}

// When steps

func (cc *catalogRepositoryContext) iSeedTheBuiltInCatalog() error {
	seeded, err := cc.repo.SeedIfEmpty(cc.ctx, catalog.Builtin())
	if err != nil {
		return err
	}
	cc.seeded = seeded
	return nil
}

func (cc *catalogRepositoryContext) iOpenASessionOnTheStoredCatalogWithBodies(list string) error {
	stored, err := cc.repo.Load(cc.ctx)
	if err != nil {
		return err
	}
	cc.session = session.New(stored)
	for _, body := range splitList(list) {
		if _, err := cc.session.AddBody(cc.ctx, body); err != nil {
			return fmt.Errorf("failed to add %s: %w", body, err)
		}
	}
	return nil
}

// Then steps

func (cc *catalogRepositoryContext) theCatalogShouldHaveBeenSeeded() error {
	if !cc.seeded {
		return fmt.Errorf("expected the last seed to write the catalog")
	}
	return nil
}

func (cc *catalogRepositoryContext) theCatalogShouldNotHaveBeenSeeded() error {
	if cc.seeded {
		return fmt.Errorf("expected the last seed to leave the catalog alone")
	}
	return nil
}

func (cc *catalogRepositoryContext) theDatabaseShouldHoldBodiesAndDistances(bodies, distances int) error {
	gotBodies, gotDistances, err := cc.repo.Count(cc.ctx)
	if err != nil {
		return err
	}
	if gotBodies != int64(bodies) || gotDistances != int64(distances) {
		return fmt.Errorf("expected %d bodies and %d distances, got %d and %d", bodies, distances, gotBodies, gotDistances)
	}
	return nil
}

func (cc *catalogRepositoryContext) theStoredDistanceBetweenShouldBe(a, b string, distance float64) error {
	stored, err := cc.repo.Load(cc.ctx)
	if err != nil {
		return err
	}
	got, ok := stored.Lookup(a, b)
	if !ok {
		return fmt.Errorf("no stored distance between %s and %s", a, b)
	}
	if got != distance {
		return fmt.Errorf("expected %.0f, got %.0f", distance, got)
	}
	return nil
}

func (cc *catalogRepositoryContext) theStoredSessionShouldHaveBodiesAndEdges(nodes, edges int) error {
	g := cc.session.Graph()
	if g.NodeCount() != nodes || g.EdgeCount() != edges {
		return fmt.Errorf("expected %d bodies and %d edges, got %d and %d", nodes, edges, g.NodeCount(), g.EdgeCount())
	}
	return nil
}

// InitializeCatalogRepositoryScenario registers the database catalog steps.
// They run against helpers.SharedTestDB.
func InitializeCatalogRepositoryScenario(ctx *godog.ScenarioContext) {
	cc := &catalogRepositoryContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty catalog database$`, cc.anEmptyCatalogDatabase)
	ctx.Step(`^the built-in catalog is seeded$`, cc.theBuiltInCatalogIsSeeded)

	// When steps
	ctx.Step(`^I seed the built-in catalog$`, cc.iSeedTheBuiltInCatalog)
	ctx.Step(`^I open a session on the stored catalog with bodies "([^"]*)"$`, cc.iOpenASessionOnTheStoredCatalogWithBodies)

	// Then steps
	ctx.Step(`^the catalog should have been seeded$`, cc.theCatalogShouldHaveBeenSeeded)
	ctx.Step(`^the catalog should not have been seeded$`, cc.theCatalogShouldNotHaveBeenSeeded)
	ctx.Step(`^the database should hold (\d+) bodies and (\d+) distances$`, cc.theDatabaseShouldHoldBodiesAndDistances)
	ctx.Step(`^the stored distance between "([^"]*)" and "([^"]*)" should be (\d+)$`, cc.theStoredDistanceBetweenShouldBe)
	ctx.Step(`^the stored session should have (\d+) bodies and (\d+) edges$`, cc.theStoredSessionShouldHaveBodiesAndEdges)
}
