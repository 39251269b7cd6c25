package main

import "salesdesk/internal/app"

// @title           Salesdesk API
// @version         1.0
// @description     Role-gated lead CRM: assignment lifecycle, status
// @description     projections and analytics rollups.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in              header
// @name            Authorization
func main() {
	app.Run()
}
