package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"energy_community/internal/catalogue"
	"energy_community/internal/ingest"
	"energy_community/internal/model"
	"energy_community/internal/scenario"
	"energy_community/internal/solar"
)

func main() {
	systemsPath := flag.String("systems", "input/generation_systems.json", "generation system catalogue JSON")
	carriersPath := flag.String("carriers", "input/energy_carriers.json", "energy carrier catalogue JSON")
	actionsPath := flag.String("actions", "input/actions.csv", "action mapping table (CSV or JSON)")
	contextPath := flag.String("context", "", "parent community context JSON (required)")
	recsPath := flag.String("recommendations", "", "recommended actions JSON (required)")
	goal := flag.Int("goal", 0, "scenario goal id")
	pvPath := flag.String("pv-profile", "", "measured hourly PV production per kWp, JSON array")
	windPath := flag.String("wind-speed", "", "hourly wind speed series in m/s, JSON array")
	centroid := flag.String("centroid", "", "community centroid as WKT")
	outPath := flag.String("out", "", "write the child context JSON here (default stdout)")
	flag.Parse()

	if *contextPath == "" || *recsPath == "" {
		log.Fatal("Both -context and -recommendations are required")
	}

	cat, err := loadCatalogue(*systemsPath, *carriersPath)
	if err != nil {
		log.Fatalf("Failed to load catalogue: %v", err)
	}
	actions, err := loadActionTable(*actionsPath)
	if err != nil {
		log.Fatalf("Failed to load action table: %v", err)
	}
	ctx, err := loadContext(*contextPath)
	if err != nil {
		log.Fatalf("Failed to load context: %v", err)
	}
	recs, err := loadRecommendations(*recsPath)
	if err != nil {
		log.Fatalf("Failed to load recommendations: %v", err)
	}

	resource := &solar.Resource{Centroid: *centroid}
	if *pvPath != "" {
		if resource.PVPerKWp, err = loadSeries(*pvPath); err != nil {
			log.Fatalf("Failed to load PV profile: %v", err)
		}
	}
	if *windPath != "" {
		if resource.WindSpeed, err = loadSeries(*windPath); err != nil {
			log.Fatalf("Failed to load wind speed series: %v", err)
		}
	}

	engine := &scenario.Engine{Catalogue: cat, Actions: actions, Resource: resource}
	result, err := engine.Apply(ctx, *goal, recs)
	if err != nil {
		log.Fatalf("Scenario transformation failed: %v", err)
	}

	log.Printf("Scenario %q created: %d actions applied, %d buildings failed",
		result.Context.Name, len(result.Applied), len(result.Failures))
	for _, f := range result.Failures {
		log.Printf("  %s", f)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Context); err != nil {
		log.Fatalf("Failed to encode child context: %v", err)
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

func loadActionTable(path string) (*catalogue.ActionTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingest.ParseActionsCSV(f)
	case ".json":
		return ingest.ParseActionsJSON(f)
	}
	return nil, fmt.Errorf("unsupported action table format: %s", path)
}

func loadContext(path string) (*model.CommunityContext, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.LoadContext(f)
}

func loadRecommendations(path string) ([]model.Recommendation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.LoadRecommendations(f)
}

func loadSeries(path string) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s model.Series
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, nil
}
