package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/handlers"

	"energy_community/internal/api"
	"energy_community/internal/catalogue"
	"energy_community/internal/ingest"
	"energy_community/internal/kpi"
	"energy_community/internal/model"
	"energy_community/internal/observability"
	"energy_community/internal/scenario"
	"energy_community/internal/solar"
	"energy_community/internal/ws"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	systemsPath := flag.String("systems", "input/generation_systems.json", "generation system catalogue JSON")
	carriersPath := flag.String("carriers", "input/energy_carriers.json", "energy carrier catalogue JSON")
	actionsPath := flag.String("actions", "input/actions.csv", "action mapping table (CSV or JSON)")
	pvPath := flag.String("pv-profile", "", "measured hourly PV production per kWp, JSON array")
	windPath := flag.String("wind-speed", "", "hourly wind speed series in m/s, JSON array")
	centroid := flag.String("centroid", "", "community centroid as WKT, e.g. \"POINT (1.5 42.5)\"")
	countryID := flag.Int("country-id", 1, "country id for national conversion factors")
	flag.Parse()

	cat, err := loadCatalogue(*systemsPath, *carriersPath)
	if err != nil {
		log.Fatalf("Failed to load catalogue: %v", err)
	}
	log.Printf("Catalogue loaded: %d systems from %s", cat.SystemCount(), *systemsPath)

	actions, err := loadActionTable(*actionsPath)
	if err != nil {
		log.Fatalf("Failed to load action table: %v", err)
	}

	resource := &solar.Resource{Centroid: *centroid}
	if *pvPath != "" {
		if resource.PVPerKWp, err = loadSeries(*pvPath); err != nil {
			log.Fatalf("Failed to load PV profile: %v", err)
		}
		log.Printf("PV profile loaded: %d steps", len(resource.PVPerKWp))
	}
	if *windPath != "" {
		if resource.WindSpeed, err = loadSeries(*windPath); err != nil {
			log.Fatalf("Failed to load wind speed series: %v", err)
		}
		log.Printf("Wind speed series loaded: %d steps", len(resource.WindSpeed))
	}

	metrics := observability.NewMetrics(nil)
	hub := ws.NewHub()
	bridge := ws.NewBridge(hub)

	server := &api.Server{
		Catalogue: cat,
		Scenario: &scenario.Engine{
			Catalogue: cat,
			Actions:   actions,
			Resource:  resource,
		},
		CountryID: *countryID,
		Factors:   kpi.DefaultCitizenFactors(),
		Metrics:   metrics,
		Hub:       hub,
		Bridge:    bridge,
	}

	logged := handlers.LoggingHandler(os.Stdout, server.Router())
	log.Printf("Starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, logged); err != nil {
		log.Fatal(err)
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

// loadActionTable picks the parser from the file extension.
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
