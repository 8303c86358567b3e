package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"energy_community/internal/catalogue"
	"energy_community/internal/ingest"
	"energy_community/internal/kpi"
	"energy_community/internal/model"
)

func main() {
	systemsPath := flag.String("systems", "input/generation_systems.json", "generation system catalogue JSON")
	carriersPath := flag.String("carriers", "input/energy_carriers.json", "energy carrier catalogue JSON")
	contextPath := flag.String("context", "", "community context JSON (required)")
	countryID := flag.Int("country-id", 1, "country id for national conversion factors")
	failFast := flag.Bool("fail-fast", false, "abort on the first building failure")
	asJSON := flag.Bool("json", false, "emit the full result as JSON instead of a report")
	flag.Parse()

	if *contextPath == "" {
		log.Fatal("No context file given — use -context")
	}

	cat, err := loadCatalogue(*systemsPath, *carriersPath)
	if err != nil {
		log.Fatalf("Failed to load catalogue: %v", err)
	}

	ctx, err := loadContext(*contextPath)
	if err != nil {
		log.Fatalf("Failed to load context: %v", err)
	}

	result, err := kpi.ComputeCommunityIndicators(cat, ctx, kpi.RunOptions{
		CountryID: *countryID,
		Factors:   kpi.DefaultCitizenFactors(),
		FailFast:  *failFast,
	})
	if err != nil {
		log.Fatalf("Indicator run failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		return
	}

	printReport(ctx, result)
}

func printReport(ctx *model.CommunityContext, result *kpi.RunResult) {
	fmt.Println()
	fmt.Println("Community Indicator Report")
	if ctx.Name != "" {
		fmt.Printf("  Context: %s\n", ctx.Name)
	}
	fmt.Printf("  Buildings: %d (%d failed)\n", len(ctx.Buildings), len(result.Failures))
	if result.Substitutions > 0 {
		fmt.Printf("  Null entries substituted with zero: %d\n", result.Substitutions)
	}
	fmt.Println()

	ids := make([]int, 0, len(result.PerBuilding))
	for id := range result.PerBuilding {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		fmt.Printf("=== Building %d ===\n", id)
		for _, entry := range result.PerBuilding[id] {
			if entry.Scalar == nil {
				continue
			}
			fmt.Printf("  %-42s %12.3f %s\n", entry.Name, *entry.Scalar, entry.Unit)
		}
		fmt.Println()
	}

	fmt.Println("=== Community ===")
	names := make([]string, 0, len(result.Community))
	for name := range result.Community {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := result.Community[name]
		if v.Scalar == nil {
			continue
		}
		fmt.Printf("  %-42s %12.3f %s\n", name, *v.Scalar, v.Unit)
	}

	if len(result.Failures) > 0 {
		fmt.Println()
		fmt.Println("=== Failures ===")
		for _, f := range result.Failures {
			fmt.Printf("  %s\n", f)
		}
	}
}

func loadCatalogue(systemsPath, carriersPath string) (*catalogue.Catalogue, error) {
	systems, err := os.Open(systemsPath)
	if err != nil {
		return nil, err
	}
	defer systems.Close()

	carriers, err := os.Open(carriersPath)
	if err != nil {
		return nil, err
	}
	defer carriers.Close()

	return ingest.LoadCatalogue(systems, carriers)
}

func loadContext(path string) (*model.CommunityContext, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.LoadContext(f)
}
