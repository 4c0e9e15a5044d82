package linsigma

// Transcript contract. Prover and verifier must agree on every byte here.
const PROTOCOL_DOMAIN = "linsigma/protocol-5/direct"
const LABEL_T = "first message, the linear form eval t"
const LABEL_A_HAT = "first message, the msm eval A_hat"
const LABEL_C0 = "c0"
const LABEL_C1 = "c1"
const CHALLENGE_BYTES = 64

// Setup defaults.
const DEFAULT_CURVE = "bls12-381"
const DEFAULT_SETUP_LABEL = "linsigma/setup/v1"
const DEFAULT_SIZE = 3

// Upper bound on vector lengths accepted by the binary decoders.
const MAX_VECTOR_LEN = 1 << 20

var GENERATOR_TAG_G = []byte("g")
var GENERATOR_TAG_H = []byte("h")
var GENERATOR_TAG_K = []byte("k")
