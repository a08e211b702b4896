// Package record defines the session record wire format shared by the tracker
// and its storage backends.
//
// A record is the JSON object {"username": string, "loginTime": number} with
// loginTime in milliseconds since the Unix epoch. There is no versioning and no
// schema validation beyond the presence of loginTime on read.
//
// # Architecture boundaries
//
// record knows nothing about storage, expiry policy, or navigation. It encodes,
// decodes, and answers time arithmetic questions about a single record.
package record
