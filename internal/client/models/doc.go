// Package models holds the studio's domain types: draft blueprints with their
// steps and blocks, the structural and catalog records they export to, caller
// principals, and derived calendar tasks.
package models
