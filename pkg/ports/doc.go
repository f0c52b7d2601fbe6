/*
Package ports defines the driven ports (interfaces) of the token studio.

These interfaces decouple rendering and editing from external systems, so drafts
can live in memory, on disk, in Redis or in a Loam repository, and documents can
be published to IPFS, a NATS object store or a local command.

# Key Interfaces

  - DraftStore: the Storage Provider. Saves, loads, lists and deletes draft blobs.
  - Publisher: the Content Publisher. Uploads Turtle text and returns its address.
  - DistributedLocker: serializes concurrent saves of the same draft.
*/
package ports
