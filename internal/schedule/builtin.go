package schedule

import (
	"time"

	"github.com/okian/stormcast/internal/domain/model"
)

func storm(id, name string, year int, start time.Time, fixes ...model.Checkpoint) model.StormSchedule {
	return model.StormSchedule{
		ID:          id,
		Name:        name,
		Year:        year,
		GameStart:   start,
		GameEnd:     start.Add(24 * time.Hour),
		Checkpoints: fixes,
	}
}

func fix(label string, kind model.CheckpointKind, lat, lon, wind, pressure float64, category int) model.Checkpoint {
	return model.Checkpoint{Label: label, Kind: kind, Lat: lat, Lon: lon, WindSpeed: wind, Pressure: pressure, Category: category}
}

// Builtin returns the schedule used when no file is configured or the
// configured file cannot be loaded. Fixes are six-hourly best-track
// positions around landfall. There are twelve storms so a daily rotation
// plays each once before any repeats.
func Builtin() []model.StormSchedule {
	const (
		base = model.KindBase
		pred = model.KindPrediction
	)
	return []model.StormSchedule{
		storm("ian-2022", "Ian", 2022, time.Date(2022, 9, 28, 0, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 24.4, -82.9, 120, 952, 3),
			fix(model.Label0600, pred, 25.2, -82.7, 140, 942, 4),
			fix(model.Label1200, pred, 25.9, -82.5, 155, 937, 4),
			fix(model.Label1800, pred, 26.6, -82.2, 150, 940, 4),
			fix(model.Label0000, pred, 27.0, -81.9, 105, 960, 2),
		),
		storm("michael-2018", "Michael", 2018, time.Date(2018, 10, 10, 0, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 27.1, -86.4, 125, 945, 3),
			fix(model.Label0600, pred, 28.0, -86.2, 140, 933, 4),
			fix(model.Label1200, pred, 29.0, -85.8, 150, 920, 4),
			fix(model.Label1800, pred, 30.0, -85.5, 160, 919, 5),
			fix(model.Label0000, pred, 31.0, -84.8, 115, 940, 3),
		),
		storm("katrina-2005", "Katrina", 2005, time.Date(2005, 8, 29, 0, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 27.6, -89.4, 145, 905, 4),
			fix(model.Label0600, pred, 28.8, -89.6, 140, 913, 4),
			fix(model.Label1200, pred, 29.5, -89.6, 125, 920, 3),
			fix(model.Label1800, pred, 31.1, -89.6, 95, 948, 2),
			fix(model.Label0000, pred, 32.6, -89.1, 50, 961, 0),
		),
		storm("andrew-1992", "Andrew", 1992, time.Date(1992, 8, 23, 18, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 25.4, -76.6, 155, 932, 5),
			fix(model.Label0600, pred, 25.4, -77.5, 160, 923, 5),
			fix(model.Label1200, pred, 25.5, -79.0, 150, 930, 4),
			fix(model.Label1800, pred, 25.5, -80.5, 165, 922, 5),
			fix(model.Label0000, pred, 25.6, -81.8, 130, 947, 4),
		),
		storm("harvey-2017", "Harvey", 2017, time.Date(2017, 8, 25, 0, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 25.0, -94.4, 105, 966, 2),
			fix(model.Label0600, pred, 25.6, -95.1, 110, 950, 3),
			fix(model.Label1200, pred, 26.3, -95.8, 120, 943, 3),
			fix(model.Label1800, pred, 27.1, -96.3, 130, 938, 4),
			fix(model.Label0000, pred, 28.0, -96.9, 130, 937, 4),
		),
		storm("irma-2017", "Irma", 2017, time.Date(2017, 9, 10, 0, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 23.2, -80.9, 130, 929, 4),
			fix(model.Label0600, pred, 23.7, -81.3, 130, 931, 4),
			fix(model.Label1200, pred, 24.6, -81.5, 130, 929, 4),
			fix(model.Label1800, pred, 25.6, -81.7, 115, 936, 3),
			fix(model.Label0000, pred, 26.7, -81.8, 100, 942, 2),
		),
		storm("maria-2017", "Maria", 2017, time.Date(2017, 9, 20, 0, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 17.6, -64.8, 155, 909, 5),
			fix(model.Label0600, pred, 17.9, -65.4, 150, 913, 4),
			fix(model.Label1200, pred, 18.3, -66.2, 155, 917, 5),
			fix(model.Label1800, pred, 18.6, -67.0, 110, 957, 2),
			fix(model.Label0000, pred, 18.9, -67.9, 110, 957, 2),
		),
		storm("laura-2020", "Laura", 2020, time.Date(2020, 8, 26, 12, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 26.7, -91.9, 120, 954, 3),
			fix(model.Label0600, pred, 27.5, -92.6, 140, 947, 4),
			fix(model.Label1200, pred, 28.4, -93.0, 150, 938, 4),
			fix(model.Label1800, pred, 29.5, -93.3, 150, 939, 4),
			fix(model.Label0000, pred, 31.1, -93.4, 100, 965, 2),
		),
		storm("ida-2021", "Ida", 2021, time.Date(2021, 8, 29, 0, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 26.9, -88.7, 110, 964, 2),
			fix(model.Label0600, pred, 27.8, -89.2, 140, 935, 4),
			fix(model.Label1200, pred, 28.7, -89.9, 150, 929, 4),
			fix(model.Label1800, pred, 29.2, -90.4, 150, 931, 4),
			fix(model.Label0000, pred, 29.9, -90.6, 110, 944, 2),
		),
		storm("camille-1969", "Camille", 1969, time.Date(1969, 8, 17, 0, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 26.6, -87.6, 160, 908, 5),
			fix(model.Label0600, pred, 27.6, -88.0, 175, 905, 5),
			fix(model.Label1200, pred, 28.3, -88.5, 175, 905, 5),
			fix(model.Label1800, pred, 29.4, -89.1, 175, 900, 5),
			fix(model.Label0000, pred, 30.4, -89.5, 170, 900, 5),
		),
		storm("hugo-1989", "Hugo", 1989, time.Date(1989, 9, 21, 6, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 28.6, -77.6, 120, 948, 3),
			fix(model.Label0600, pred, 30.0, -78.4, 125, 944, 3),
			fix(model.Label1200, pred, 31.2, -79.0, 135, 938, 4),
			fix(model.Label1800, pred, 32.5, -79.7, 140, 934, 4),
			fix(model.Label0000, pred, 34.0, -80.8, 95, 964, 2),
		),
		storm("rita-2005", "Rita", 2005, time.Date(2005, 9, 23, 6, 0, 0, 0, time.UTC),
			fix(model.Label0000, base, 27.2, -91.8, 125, 931, 3),
			fix(model.Label0600, pred, 27.9, -92.6, 120, 931, 3),
			fix(model.Label1200, pred, 28.8, -93.2, 120, 932, 3),
			fix(model.Label1800, pred, 29.8, -93.7, 115, 937, 3),
			fix(model.Label0000, pred, 30.9, -94.0, 85, 955, 1),
		),
	}
}
