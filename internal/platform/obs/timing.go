package obs

import (
	"log"
	"time"
)

// Time instruments one named operation. Use it as a deferred call with the
// operation's named error result so failures land in the same log line:
//
//	defer obs.Time("dataset.sqlite.ListPOIRecords")(&err)
func Time(name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("op=%s dur=%dms err=%v", name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("op=%s dur=%dms", name, dur.Milliseconds())
	}
}
