// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the conversion lifecycle from input records
// to exported tree, decoupled from any specific entrypoint.
package app
