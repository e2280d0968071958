// Seeds the reference catalog: stations, buses, routes and luggage types.
// Safe to re-run; existing rows are matched by their natural keys.
package main

import (
	"log/slog"
	"os"

	"busify/internal/catalog"
	"busify/internal/shared/config"
	"busify/internal/shared/database"
	"busify/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		appLogger.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	gormDB := db.GetPostgreSQL()
	if err := database.Migrate(gormDB); err != nil {
		appLogger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.MigrateConstraints(gormDB); err != nil {
		appLogger.Error("constraint migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := seed(gormDB); err != nil {
		appLogger.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	appLogger.Info("catalog seeded")
}

func seed(db *gorm.DB) error {
	stations := []catalog.Station{
		{Name: "Central Bus Terminal", City: "New York", Address: "123 Main Street, New York, NY", Latitude: 40.7128, Longitude: -74.0060},
		{Name: "Union Station", City: "Los Angeles", Address: "800 N Alameda St, Los Angeles, CA", Latitude: 34.0522, Longitude: -118.2437},
		{Name: "South Station", City: "Boston", Address: "700 Atlantic Ave, Boston, MA", Latitude: 42.3601, Longitude: -71.0589},
		{Name: "Transbay Terminal", City: "San Francisco", Address: "425 Mission St, San Francisco, CA", Latitude: 37.7749, Longitude: -122.4194},
		{Name: "Union Station", City: "Chicago", Address: "225 S Canal St, Chicago, IL", Latitude: 41.8781, Longitude: -87.6298},
	}
	for i := range stations {
		err := db.Where("name = ? AND city = ?", stations[i].Name, stations[i].City).
			FirstOrCreate(&stations[i]).Error
		if err != nil {
			return err
		}
	}

	byCity := make(map[string]catalog.Station, len(stations))
	for _, s := range stations {
		byCity[s.City] = s
	}

	buses := []catalog.Bus{
		{Code: "BUS001", Type: catalog.BusTypeStandard, TotalSeats: 45, LuggageCapacity: 500,
			Amenities: []string{"Air Conditioning", "WiFi", "Restroom"}, Active: true},
		{Code: "BUS002", Type: catalog.BusTypeLuxury, TotalSeats: 30, LuggageCapacity: 400,
			Amenities: []string{"Air Conditioning", "WiFi", "Restroom", "Power Outlets", "Entertainment System"}, Active: true},
		{Code: "BUS003", Type: catalog.BusTypeStandard, TotalSeats: 45, LuggageCapacity: 500,
			Amenities: []string{"Air Conditioning", "WiFi", "Restroom"}, Active: true},
		{Code: "BUS004", Type: catalog.BusTypeLuxury, TotalSeats: 30, LuggageCapacity: 400,
			Amenities: []string{"Air Conditioning", "WiFi", "Restroom", "Power Outlets", "Entertainment System"}, Active: true},
	}
	for i := range buses {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&buses[i]).Error
		if err != nil {
			return err
		}
	}

	routes := []struct {
		route catalog.Route
		stops []string // intermediate stop cities, in order
	}{
		{
			route: catalog.Route{
				Name:          "NYC to LA Express",
				OriginID:      byCity["New York"].ID,
				DestinationID: byCity["Los Angeles"].ID,
				Distance:      2800,
				Duration:      42,
				BusCodes:      []string{"BUS001", "BUS002"},
			},
			stops: []string{"Chicago"},
		},
		{
			route: catalog.Route{
				Name:          "NYC to Boston Express",
				OriginID:      byCity["New York"].ID,
				DestinationID: byCity["Boston"].ID,
				Distance:      215,
				Duration:      4.5,
				BusCodes:      []string{"BUS003"},
			},
		},
		{
			route: catalog.Route{
				Name:          "LA to SF Express",
				OriginID:      byCity["Los Angeles"].ID,
				DestinationID: byCity["San Francisco"].ID,
				Distance:      380,
				Duration:      6,
				BusCodes:      []string{"BUS004"},
			},
		},
	}
	for i := range routes {
		r := &routes[i].route
		if r.OriginID == r.DestinationID {
			continue // origin must differ from destination
		}
		err := db.Where("name = ?", r.Name).FirstOrCreate(r).Error
		if err != nil {
			return err
		}
		for position, city := range routes[i].stops {
			stop := catalog.RouteStop{
				RouteID:   r.ID,
				StationID: byCity[city].ID,
				Position:  position + 1,
			}
			err := db.Where("route_id = ? AND position = ?", r.ID, stop.Position).
				FirstOrCreate(&stop).Error
			if err != nil {
				return err
			}
		}
	}

	luggageTypes := []catalog.LuggageType{
		{Name: "Small Bag", MaxWeight: 10, MaxSize: "45cm x 35cm x 20cm", AdditionalCost: 0},
		{Name: "Medium Suitcase", MaxWeight: 20, MaxSize: "65cm x 45cm x 25cm", AdditionalCost: 10},
		{Name: "Large Suitcase", MaxWeight: 30, MaxSize: "75cm x 55cm x 30cm", AdditionalCost: 20},
		{Name: "Oversized Item", MaxWeight: 50, MaxSize: "Special dimensions", AdditionalCost: 50},
	}
	for i := range luggageTypes {
		err := db.Where("name = ?", luggageTypes[i].Name).
			FirstOrCreate(&luggageTypes[i]).Error
		if err != nil {
			return err
		}
	}

	return nil
}
