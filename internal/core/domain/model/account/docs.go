// Package account contains the Wallet aggregate, an append-only ledger of
// money movements for one owner. Balance changes only through postings; every
// posting stamps the balance after it, so the stored balance can always be
// verified by replaying the transaction list.
package account
