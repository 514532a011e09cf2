// Package schedcsv reads session demand files and reads/writes schedule
// grids in CSV form. Demand files carry one request per row with the name
// and length columns configured per request class; schedule files are a
// "Room 1..Room N" header followed by one row per block, blank cells
// marking free slots.
package schedcsv
