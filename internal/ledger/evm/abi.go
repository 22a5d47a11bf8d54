package evm

// registryABI is the application binary interface of the deployed
// EurekaInvoiceRegistry contract. Content hashes travel as hex strings; the
// contract enforces hash and code uniqueness and issuer-only transitions,
// making it the final authority behind the service-level prechecks.
const registryABI = `[
  {
    "inputs": [
      {"internalType": "string", "name": "sha256Hash", "type": "string"},
      {"internalType": "string", "name": "hashcode", "type": "string"}
    ],
    "name": "submitInvoice",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "string", "name": "hashcode", "type": "string"}],
    "name": "completeInvoice",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "string", "name": "hashcode", "type": "string"}],
    "name": "revokeInvoice",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "string", "name": "hashcode", "type": "string"}],
    "name": "getInvoice",
    "outputs": [
      {"internalType": "string", "name": "hash", "type": "string"},
      {"internalType": "string", "name": "hashcode", "type": "string"},
      {"internalType": "address", "name": "issuer", "type": "address"},
      {"internalType": "uint256", "name": "timestamp", "type": "uint256"},
      {"internalType": "bool", "name": "revoked", "type": "bool"},
      {"internalType": "bool", "name": "completed", "type": "bool"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "string", "name": "sha256Hash", "type": "string"}],
    "name": "shaExists",
    "outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
    "stateMutability": "view",
    "type": "function"
  }
]`
