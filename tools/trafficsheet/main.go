// Command trafficsheet writes a blank traffic count sheet (one zeroed row
// every few minutes) to fill in by hand while counting at the junctions.
package main

import (
	"os"

	"howth-congestion/config"
	"howth-congestion/storage"
	"howth-congestion/utils"
)

func main() {
	logger := utils.NewLogger()
	config.Load()

	path := config.Env("TRAFFIC_TEMPLATE_PATH", "data/thurs-a.csv")
	rows, err := storage.WriteTrafficTemplate(path,
		config.EnvInt("TEMPLATE_START_HOUR", 15),
		config.EnvInt("TEMPLATE_END_HOUR", 17),
		config.EnvInt("TEMPLATE_END_MINUTE", 45),
		config.EnvInt("TEMPLATE_STEP_MINUTES", 5),
	)
	if err != nil {
		logger.Error("[trafficsheet] %v", err)
		os.Exit(1)
	}
	logger.Info("[trafficsheet] Wrote %d rows to %s", rows, path)
}
