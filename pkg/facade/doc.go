// Package facade defines the contract an external benchmark harness would
// drive chainrocks through, and one concrete adapter over pkg/kv.Database.
//
// The benchmark driver itself - random workload generation, system-metric
// sampling, CSV logging, and its command-line argument parsing - is
// explicitly out of scope; this package only exposes the seam such a
// harness would plug into.
package facade
