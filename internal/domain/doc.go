// Package domain contains the core business entities and domain logic of
// the application: users, their tasks, and the categories tasks are filed
// under. It is independent of any specific infrastructure or delivery
// mechanism; persistence and transport concerns live elsewhere.
package domain
