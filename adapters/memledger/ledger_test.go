package memledger

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"

	"gomonte/domain/core"
)

func newArtifact(kind core.ArtifactKind) core.Artifact {
	return core.Artifact{ID: core.NewID(), Kind: kind, Payload: map[string]int{"n": 1}, CreatedAt: core.Now()}
}

func TestStoreAndList(t *testing.T) {
	ledger := New()
	ctx := context.Background()
	runID := core.RunID("run-1")

	a := newArtifact(core.ArtifactConvergencePath)
	b := newArtifact(core.ArtifactSummary)
	if err := ledger.StoreArtifact(ctx, runID, a); err != nil {
		t.Fatal(err)
	}
	if err := ledger.StoreArtifact(ctx, runID, b); err != nil {
		t.Fatal(err)
	}

	got, err := ledger.ListArtifacts(ctx, runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Errorf("artifacts should come back in insertion order, got %d", len(got))
	}

	if _, err := ledger.ListArtifacts(ctx, core.RunID("missing")); err == nil {
		t.Error("unknown run should return an error")
	}
}

func TestStoreRejectsIncompleteArtifacts(t *testing.T) {
	ledger := New()
	ctx := context.Background()

	if err := ledger.StoreArtifact(ctx, "", newArtifact(core.ArtifactSummary)); err == nil {
		t.Error("empty run ID should be rejected")
	}
	if err := ledger.StoreArtifact(ctx, "run-1", core.Artifact{Kind: core.ArtifactSummary}); err == nil {
		t.Error("artifact without an ID should be rejected")
	}
}

func TestGetArtifactsByKind(t *testing.T) {
	ledger := New()
	ctx := context.Background()
	runID := core.RunID("run-1")

	for i := 0; i < 3; i++ {
		if err := ledger.StoreArtifact(ctx, runID, newArtifact(core.ArtifactSamplingDistribution)); err != nil {
			t.Fatal(err)
		}
	}
	if err := ledger.StoreArtifact(ctx, runID, newArtifact(core.ArtifactRunManifest)); err != nil {
		t.Fatal(err)
	}

	dists, err := ledger.GetArtifactsByKind(ctx, runID, core.ArtifactSamplingDistribution)
	if err != nil {
		t.Fatal(err)
	}
	if len(dists) != 3 {
		t.Errorf("want 3 sampling distributions, got %d", len(dists))
	}

	manifests, err := ledger.GetArtifactsByKind(ctx, runID, core.ArtifactRunManifest)
	if err != nil {
		t.Fatal(err)
	}
	if len(manifests) != 1 {
		t.Errorf("want 1 manifest, got %d", len(manifests))
	}
}

func TestConcurrentStores(t *testing.T) {
	ledger := New()
	ctx := context.Background()
	runID := core.RunID("run-1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ledger.StoreArtifact(ctx, runID, newArtifact(core.ArtifactIntegralEstimate))
		}()
	}
	wg.Wait()

	got, err := ledger.ListArtifacts(ctx, runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 50 {
		t.Errorf("want 50 artifacts after concurrent stores, got %d", len(got))
	}
}

func TestExportJSON(t *testing.T) {
	ledger := New()
	ctx := context.Background()
	runID := core.RunID("run-1")
	if err := ledger.StoreArtifact(ctx, runID, newArtifact(core.ArtifactErrorScaling)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ledger.ExportJSON(&buf, runID); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		RunID     string `json:"run_id"`
		Artifacts []struct {
			Kind string `json:"kind"`
		} `json:"artifacts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.RunID != "run-1" || len(doc.Artifacts) != 1 || doc.Artifacts[0].Kind != "error_scaling" {
		t.Errorf("export content wrong: %+v", doc)
	}
}
