// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features.
//
// Each service covers one domain area: tasks, categories, and user profiles.
// Services enforce ownership rules (a user only ever sees and edits their own
// rows), apply transactional boundaries when an operation spans multiple
// stores, and translate store errors into forms the API layer can map onto
// HTTP status codes.
//
// Services receive their dependencies through constructor injection and
// depend only on domain entities and store interfaces, never on a concrete
// database implementation.
package service
