// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that loads a scenario,
// builds its visibility graph, and solves its queries, decoupled from any
// specific entrypoint like a CLI.
package app
