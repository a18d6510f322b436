// Package infra contains technical adapters such as the CSV dataset
// loader, metrics exporters and error monitoring. These packages should
// depend only on the interfaces defined in the core packages.
package infra
