// Package models contains the GORM persistence models for the procurement
// document aggregates. Each document stores its header on the aggregate
// table and its lines on a child row table; rows carry no domain identity,
// so saves replace them wholesale in document order.
package models
