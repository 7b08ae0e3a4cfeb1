// Package scheduler triggers batch runs on a cron schedule.
//
// Schedules use the standard five-field cron syntax. A tick that fires
// while the previous run is still in progress is skipped.
package scheduler
