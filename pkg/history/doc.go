// Package history records every code generation performed by mathgen so the
// results can be inspected and audited later.
//
// # Architecture
//
// The history system consists of three layers:
//
//  1. Recorder - builds records from generation results and writes them asynchronously
//  2. Storage Backend - persists records (memory or SQLite)
//  3. Retention - prunes old records on a cron schedule
//
// # Records
//
// Each record captures the source expression (and its SHA-256 hash), the
// target language, the generated code, the outcome, the error code when the
// generation failed, the parse tree size and the time it took.
//
// # Basic Usage
//
//	store, err := storage.New(cfg.History)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	rec := history.NewRecorder(store, nil)
//	defer rec.Close()
//
//	rec.Record(&history.Record{Expression: "2x", Language: "python", Code: "2*x"})
//
// Records are queried with a Query value:
//
//	records, err := store.Query(ctx, &history.Query{Language: "python", Limit: 20})
package history
