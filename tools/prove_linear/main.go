package main

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"
	"os"

	"github.com/eon-protocol/linsigma"
	"github.com/eon-protocol/linsigma/curve"
)

func main() {
	if len(os.Args) < 4 {
		log.Fatalln("usage:", os.Args[0], "<params>", "<config.yaml | ->", "<gamma>", "<x_0>", "...", "<x_{n-1}>")
	}
	linsigma.SetupLogging()
	pp, form := load(os.Args[1], os.Args[2])

	gamma := parse(pp.Curve, os.Args[3])
	w := &linsigma.Witness{Gamma: gamma}
	for _, arg := range os.Args[4:] {
		w.X = append(w.X, parse(pp.Curve, arg))
	}
	st, err := pp.Commit(form, w)
	if err != nil {
		log.Fatalln(err)
	}
	proof, err := pp.Prove(rand.Reader, form, w)
	if err != nil {
		log.Fatalln(err)
	}
	data, err := proof.MarshalBinary()
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(hex.EncodeToString(st.P.Bytes()))
	fmt.Println(hex.EncodeToString(st.Y.Bytes()))
	fmt.Println(hex.EncodeToString(data))
}

func load(paramsPath, configPath string) (*linsigma.Params, linsigma.LinearForm) {
	file, err := os.Open(paramsPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer file.Close()
	var pp linsigma.Params
	if _, err := pp.ReadFrom(bufio.NewReader(file)); err != nil {
		log.Fatalln(err)
	}
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
	return &pp, form
}

func parse(c curve.Curve, s string) curve.Scalar {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		log.Fatalln("invalid integer:", s)
	}
	return c.ScalarFromBigInt(v)
}
