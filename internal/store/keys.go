package store

// keyPrefix namespaces every key this application writes, so the store can
// share a database with other data.
const keyPrefix = "versepace:"

// StateKey is the fixed key of the persisted ReadingState record.
const StateKey = keyPrefix + "state"
