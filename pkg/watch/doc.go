// Package watch regenerates code whenever an expression file changes.
//
// The watcher observes the directory containing the input file so that
// editors which save by writing a temporary file and renaming it are
// handled. Bursts of events are collapsed by a Debouncer, and the output
// file is replaced atomically. A failed generation is logged and leaves the
// previous output in place.
//
//	w, err := watch.New(watch.Config{
//		Input:    "area.math",
//		Output:   "area.py",
//		Language: "python",
//	}, generator)
//	if err != nil {
//		return err
//	}
//	return w.Watch(ctx, nil)
package watch
