package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/eon-protocol/linsigma"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		log.Fatalln("usage:", os.Args[0], "<params out>", "[config.yaml]")
	}
	linsigma.SetupLogging()
	path := ""
	if len(os.Args) == 3 {
		path = os.Args[2]
	}
	cfg, err := linsigma.LoadConfig(path)
	if err != nil {
		log.Fatalln(err)
	}
	bar := progressbar.NewOptions(cfg.Size+2,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Deriving generators"),
		progressbar.OptionShowCount(),
	)
	pp, err := cfg.Params(linsigma.WithProgress(func(n int) { _ = bar.Add(n) }))
	if err != nil {
		log.Fatalln(err)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	file, err := os.Create(os.Args[1])
	if err != nil {
		log.Fatalln(err)
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	n, err := pp.WriteTo(w)
	if err != nil {
		log.Fatalln(err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalln(err)
	}
	fmt.Println(pp.Curve.Name(), "n =", pp.Size(), "label =", cfg.Label, "bytes =", n)
}
