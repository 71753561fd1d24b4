// Package extract walks a modality root for media files and fans per-file
// metric extraction out across a bounded worker pool. File discovery supports
// calendar restriction and seeded sampling caps so very large roots can be
// processed in bounded time.
package extract
