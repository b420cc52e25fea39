// Package orchestration runs a Monte Carlo estimation of π across concurrent
// workers, polls their counters on a fixed interval and hands aggregated
// progress to presentation code through the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
