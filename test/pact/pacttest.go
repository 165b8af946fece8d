//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "franchise-catalog-api"
	ConsumerName = "franchise-backoffice"

	StateCatalogEmpty  = "catalog is empty"
	StateCatalogSeeded = "franchise 1 with branch 2 and product 3 exists"
	StateProductAbsent = "no product with id 404"
)

// Identifiers assigned by a freshly seeded catalog. The in-memory store shares one
// sequence across entity kinds, so seeding order fixes them.
const (
	SeededFranchiseID int64 = 1
	SeededBranchID    int64 = 2
	SeededProductID   int64 = 3
	MissingProductID  int64 = 404
)

const (
	SeededFranchiseName = "Pact Franchise"
	SeededBranchName    = "Pact Branch"
	SeededProductName   = "Pact Product"
	SeededProductStock  = 7
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the backoffice consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
