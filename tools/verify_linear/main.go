package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/eon-protocol/linsigma"
)

func main() {
	if len(os.Args) != 6 {
		log.Fatalln("usage:", os.Args[0], "<params>", "<config.yaml | ->", "<P hex>", "<y hex>", "<proof hex>")
	}
	linsigma.SetupLogging()

	file, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalln(err)
	}
	defer file.Close()
	var pp linsigma.Params
	if _, err := pp.ReadFrom(bufio.NewReader(file)); err != nil {
		log.Fatalln(err)
	}
	configPath := os.Args[2]
	if configPath == "-" {
		configPath = ""
	}
	cfg, err := linsigma.LoadConfig(configPath)
	if err != nil {
		log.Fatalln(err)
	}
	cfg.Size = pp.Size()
	form, err := cfg.LinearForm(pp.Curve)
	if err != nil {
		log.Fatalln(err)
	}

	P, err := pp.Curve.ParsePoint(decode(os.Args[3]))
	if err != nil {
		log.Fatalln(err)
	}
	y, err := pp.Curve.ParseScalar(decode(os.Args[4]))
	if err != nil {
		log.Fatalln(err)
	}
	proof, err := linsigma.UnmarshalProof(pp.Curve, decode(os.Args[5]))
	if err != nil {
		log.Fatalln(err)
	}
	if err := pp.Verify(form, &linsigma.Statement{P: P, Y: y}, proof); err != nil {
		log.Fatalln(err)
	}
	fmt.Println("ok")
}

func decode(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		log.Fatalln(err)
	}
	return b
}
