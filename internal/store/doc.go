// Package store defines the persistence interfaces for users, tasks, and
// categories, plus the shared machinery around them: common sentinel
// errors, the DBTX handle abstraction, and transaction helpers. Concrete
// implementations live in platform/postgres; services depend only on the
// interfaces here.
package store
