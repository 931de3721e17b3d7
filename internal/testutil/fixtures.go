// Package testutil holds fixtures and fakes shared across test suites.
package testutil

import "github.com/mroussel/frais/internal/domain"

// SampleBills returns four bills with deliberately shuffled dates so
// ordering assertions have something to verify.
func SampleBills() []domain.Bill {
	return []domain.Bill{
		{
			ID:         "47qAXb6fIm2zOKkLzMro",
			Email:      "employee@test.tld",
			Type:       "Hôtel et logement",
			Name:       "Séminaire billed",
			Date:       "2004-04-04",
			Amount:     400,
			Pct:        20,
			VAT:        "80",
			Commentary: "séminaire billed",
			FileURL:    "https://test.storage.tld/justificatif-1.jpg",
			FileName:   "preview-facture-free-201801-pdf-1.jpg",
			Status:     domain.BillPending,
		},
		{
			ID:         "BeKy5Mo4jkmdfPGYpTxZ",
			Email:      "employee@test.tld",
			Type:       "Transports",
			Name:       "Vol Paris Londres",
			Date:       "2001-01-01",
			Amount:     100,
			Pct:        20,
			VAT:        "",
			Commentary: "vol pro",
			FileURL:    "https://test.storage.tld/justificatif-2.jpg",
			FileName:   "billet-avion.jpg",
			Status:     domain.BillRefused,
		},
		{
			ID:       "UIUZtnPQvnbFnB0ozvJh",
			Email:    "employee@test.tld",
			Type:     "Services en ligne",
			Name:     "Abonnement logiciel",
			Date:     "2003-03-03",
			Amount:   300,
			Pct:      20,
			VAT:      "60",
			FileURL:  "https://test.storage.tld/justificatif-3.jpg",
			FileName: "facture-saas.png",
			Status:   domain.BillAccepted,
		},
		{
			ID:       "qcCK3SzECmaZAGRrHjaC",
			Email:    "employee@test.tld",
			Type:     "Restaurants et bars",
			Name:     "Déjeuner client",
			Date:     "2002-02-02",
			Amount:   200,
			Pct:      20,
			VAT:      "40",
			Status:   domain.BillRefused,
			FileName: "",
		},
	}
}
