package db

const schema = `
PRAGMA temp_store = MEMORY;

-- Distinct PULocationID values seen in the trip file
CREATE TABLE IF NOT EXISTS trip_location_ids (
    location_id INTEGER PRIMARY KEY
);

-- Distinct LocationID values from the zone lookup table
CREATE TABLE IF NOT EXISTS lookup_location_ids (
    location_id INTEGER PRIMARY KEY
);
`

// Set names one of the id tables.
type Set string

const (
	TripIDs   Set = "trip_location_ids"
	LookupIDs Set = "lookup_location_ids"
)
