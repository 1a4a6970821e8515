package pprof

import (
	"log"
	"net/http"
	_ "net/http/pprof"
)

// Start serves the default pprof handlers on the given port, in the
// background. Disabled when port is empty.
func Start(port string) {
	if port == "" {
		return
	}
	go func() {
		addr := ":" + port

		log.Println("pprof listening on", addr)

		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Println("pprof server error:", err)
		}
	}()
}
