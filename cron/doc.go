// Package cron turns cron expressions into launchd calendar intervals.
//
// Parsing is delegated to github.com/robfig/cron/v3. The expansion only needs
// to know, per unit, which values are listed and whether the unit was a
// wildcard; callers may also build a Schedule by hand.
package cron
