// Command paladar runs the El Buen Paladar server and manages its store.
//
//	paladar serve              # page, JSON API, GraphQL, /ws, /metrics
//	paladar migrate            # apply pending migrations
//	paladar migrate:status
//	paladar migrate:rollback
//	paladar seed [name...]
//	paladar route:list
//	paladar users list|add|update|delete
//	paladar orders list|add|update|delete
//	paladar backup | backup:list
//
// Configuration comes from config/app.json, .env and the environment; see
// package config.
package main
