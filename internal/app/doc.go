// Package app wires the orchestration engine into a runnable application:
// configuration, logging, the pipeline loader, the built-in simulation
// handlers, and plan/result rendering. The engine itself stays I/O-free;
// everything user-facing lives here.
package app
