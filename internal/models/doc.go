// Package models defines the core domain models for crashlog.
//
// # Aggregates
//
//   - User: a registered account that owns accident and insurance records
//   - Person: a non-account individual (witness or other driver)
//   - Insurance: an insurance record owned by a User or a Person
//   - Accident: an accident report owned by exactly one User
//
// # Design Principles
//
//  1. **Owner on the aggregate**: Insurance and Accident carry their owner
//     directly. A user's record lists are derived at read time by querying
//     on the owner, never stored alongside the user.
//  2. **Tagged owner union**: Insurance.OwnerKind says whether OwnerID points
//     at a User or a Person, so resolution is a single keyed lookup.
//  3. **Embedded sub-records**: photos, witnesses, and other vehicles live
//     inside the accident document as value records with no identity of
//     their own; they are removed by value match (URL, phone number,
//     registration number).
//  4. **Avoid circular references**: relationships use ID strings, not
//     pointers.
package models
