package stores_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
	"github.com/openfroyo/froyo-analyzer/pkg/stores"
)

// ExampleOpen demonstrates opening a migrated in-memory SQLite store.
func ExampleOpen() {
	ctx := context.Background()
	store, err := stores.Open(ctx, stores.Config{
		Driver: stores.DriverSQLite,
		DSN:    ":memory:", // Use in-memory database for example
	})
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	fmt.Println("Store initialized successfully")
	// Output: Store initialized successfully
}

// ExampleRecorder demonstrates recording an analysis and reading it back.
func ExampleRecorder() {
	ctx := context.Background()
	store, err := stores.Open(ctx, stores.Config{Driver: stores.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	recorder := stores.NewRecorder(store)
	err = recorder.Record(ctx, &analyzer.AnalysisRecord{
		ID:        "3f1c7a52-9d7e-4a43-8f57-2a5a3c0e4b11",
		Method:    analyzer.MethodAnalyze,
		Resources: 1,
		Diagnostics: []analyzer.Diagnostic{{
			PolicyName:       "required-tags",
			PolicyPackName:   "acme",
			Message:          "bucket is missing the owner tag",
			EnforcementLevel: analyzer.EnforcementMandatory,
			URN:              "urn:pulumi:dev::app::aws:s3/bucket:Bucket::logs",
		}},
		StartedAt: time.Now(),
		Duration:  12 * time.Millisecond,
	})
	if err != nil {
		log.Fatal(err)
	}

	analyses, err := store.ListAnalyses(ctx, stores.ListOptions{MandatoryOnly: true})
	if err != nil {
		log.Fatal(err)
	}
	diags, err := store.ListDiagnostics(ctx, analyses[0].ID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %d mandatory\n", analyses[0].Method, analyses[0].Mandatory)
	fmt.Printf("%s [%s] %s\n", diags[0].PolicyName, diags[0].EnforcementLevel, diags[0].Message)
	// Output:
	// Analyze: 1 mandatory
	// required-tags [mandatory] bucket is missing the owner tag
}
