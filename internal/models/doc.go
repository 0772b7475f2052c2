// Package models defines domain entities and persistence interfaces for the tunebridge integration service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external service data
//   - [Song], [Album], [Artist], [Playlist] : Music library entities
//   - [RadioStation] : Station directory entries
//   - [Lyrics], [LyricLine] : Timed or plain lyrics
//   - [SimilarArtist], [ChartEntry], [ArtistBio] : Metadata provider results
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedStation] : Validated stations cached locally with soft delete
//   - [CachedLyrics] : Lyrics lookups cached with a TTL
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
