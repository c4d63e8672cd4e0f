// Package pathbus implements an in-process publish/subscribe bus with
// hierarchical path-pattern routing. Topics look like filesystem paths
// (e.g. "/order/created/book"); subscription patterns may contain named
// parameters, character-class constraints, and wildcards of varying
// arities. Publishing fans out to every matching subscriber concurrently,
// tracks in-flight publications, and supports one-shot subscriptions and a
// "wait for the next matching publication" primitive.
//
// The bus is purely in-process and in-memory: there is no network, no
// durability, and no cross-process replay.
package pathbus
