// File: utils/constants.go
package utils

// SessionCachePrefix is the prefix used for Redis session page cache keys.
const SessionCachePrefix = "sessions:"

// ReminderTaskPrefix namespaces asynq task IDs so a session is reminded once.
const ReminderTaskPrefix = "reminder:"
