package main

// @title Medi-Elevation API
// @version 1.0
// @description Elevation lookups and reversible "ele" edit batches for geographic points
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /
