// Package report builds human-readable utilization summaries from schedule
// grids: slots filled against capacity and per-session slot counts.
package report
