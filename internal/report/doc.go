// Package report runs simulated report generation as an extract-transform-load
// loop: a bounded Queue supplies requests, a Builder waits the generation
// delay and summarizes the catalog, and a loader delivers the finished
// reports to Kafka or the log.
package report
