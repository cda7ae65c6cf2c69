package memory

import "github.com/marves/pcpartstore/internal/catalog/domain"

func floatPtr(f float64) *float64 { return &f }

// seedProducts returns the built-in catalog. IDs are stable so carts and
// deep links survive restarts.
func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "AMD Ryzen 9 5900X",
			Price:       499.99,
			Description: "12 cores, 24 threads, up to 4.8 GHz max boost",
			Category:    domain.CategoryCPU,
			Stock:       10,
			Image:       "https://placehold.co/600x400/222222/FFFFFF?text=AMD+Ryzen+9+5900X",
			Specifications: map[string]string{
				"cores":      "12",
				"threads":    "24",
				"baseSpeed":  "3.7 GHz",
				"boostSpeed": "4.8 GHz",
				"cache":      "64MB",
				"tdp":        "105W",
			},
			Brand:    "AMD",
			Model:    "Ryzen 9 5900X",
			Rating:   floatPtr(4.8),
			Featured: true,
		},
		{
			ID:          "2",
			Name:        "NVIDIA GeForce RTX 4080",
			Price:       1199.99,
			Description: "High-performance gaming graphics card with ray tracing",
			Category:    domain.CategoryGPU,
			Stock:       5,
			Image:       "https://placehold.co/600x400/076900/FFFFFF?text=RTX+4080",
			Specifications: map[string]string{
				"memory":      "16GB GDDR6X",
				"coreClock":   "2.21 GHz",
				"rtCores":     "76",
				"tensorCores": "304",
				"hdmi":        "1x HDMI 2.1",
				"displayPort": "3x DisplayPort 1.4a",
			},
			Brand:    "NVIDIA",
			Model:    "RTX 4080",
			Rating:   floatPtr(4.9),
			Featured: true,
		},
		{
			ID:          "3",
			Name:        "Samsung 970 EVO Plus 1TB",
			Price:       99.99,
			Description: "NVMe M.2 SSD with exceptional performance",
			Category:    domain.CategoryStorage,
			Stock:       15,
			Image:       "https://placehold.co/600x400/000069/FFFFFF?text=Samsung+SSD",
			Specifications: map[string]string{
				"capacity":   "1TB",
				"interface":  "PCIe Gen 3.0 x4",
				"readSpeed":  "3,500 MB/s",
				"writeSpeed": "3,300 MB/s",
				"form":       "M.2 2280",
				"endurance":  "600 TBW",
			},
			Brand:    "Samsung",
			Model:    "970 EVO Plus",
			Rating:   floatPtr(4.7),
			Featured: true,
		},
		{
			ID:          "4",
			Name:        "ASUS ROG STRIX B550-F",
			Price:       179.99,
			Description: "AMD AM4 gaming motherboard with PCIe 4.0",
			Category:    domain.CategoryMotherboard,
			Stock:       8,
			Image:       "https://placehold.co/600x400/690000/FFFFFF?text=ASUS+ROG+STRIX",
			Specifications: map[string]string{
				"socket":      "AM4",
				"chipset":     "B550",
				"memorySlots": "4",
				"maxMemory":   "128GB",
				"pciSlots":    "2x PCIe 4.0",
				"formFactor":  "ATX",
			},
			Brand:  "ASUS",
			Model:  "ROG STRIX B550-F",
			Rating: floatPtr(4.6),
		},
		{
			ID:          "5",
			Name:        "Corsair Vengeance RGB Pro 32GB",
			Price:       114.99,
			Description: "DDR4 3600MHz dual-channel kit with RGB lighting",
			Category:    domain.CategoryRAM,
			Stock:       20,
			Image:       "https://placehold.co/600x400/333333/FFFFFF?text=Corsair+Vengeance",
			Specifications: map[string]string{
				"capacity": "32GB (2x16GB)",
				"type":     "DDR4",
				"speed":    "3600MHz",
				"latency":  "CL18",
				"voltage":  "1.35V",
			},
			Brand:  "Corsair",
			Model:  "Vengeance RGB Pro",
			Rating: floatPtr(4.8),
		},
		{
			ID:          "6",
			Name:        "Corsair RM850x",
			Price:       139.99,
			Description: "850W fully modular 80+ Gold power supply",
			Category:    domain.CategoryPowerSupply,
			Stock:       12,
			Image:       "https://placehold.co/600x400/444444/FFFFFF?text=Corsair+RM850x",
			Specifications: map[string]string{
				"wattage":    "850W",
				"efficiency": "80+ Gold",
				"modular":    "Fully modular",
				"fan":        "135mm",
			},
			Brand:              "Corsair",
			Model:              "RM850x",
			DiscountPercentage: 10,
			Rating:             floatPtr(4.9),
		},
		{
			ID:          "7",
			Name:        "NZXT H510 Flow",
			Price:       89.99,
			Description: "Compact mid-tower ATX case with perforated front panel",
			Category:    domain.CategoryCase,
			Stock:       0,
			Image:       "https://placehold.co/600x400/555555/FFFFFF?text=NZXT+H510",
			Specifications: map[string]string{
				"formFactor":  "Mid-tower",
				"motherboard": "ATX, mATX, Mini-ITX",
				"fans":        "2x 120mm included",
				"gpuLength":   "360mm max",
			},
			Brand:  "NZXT",
			Model:  "H510 Flow",
			Rating: floatPtr(4.4),
		},
		{
			ID:          "8",
			Name:        "Noctua NH-D15",
			Price:       109.95,
			Description: "Dual-tower CPU air cooler with two NF-A15 fans",
			Category:    domain.CategoryCooling,
			Stock:       7,
			Image:       "https://placehold.co/600x400/654321/FFFFFF?text=Noctua+NH-D15",
			Specifications: map[string]string{
				"type":    "Air",
				"fans":    "2x NF-A15 140mm",
				"height":  "165mm",
				"sockets": "AM4, AM5, LGA1700",
				"noise":   "24.6 dB(A)",
			},
			Brand:  "Noctua",
			Model:  "NH-D15",
			Rating: floatPtr(4.9),
		},
		{
			ID:          "9",
			Name:        "Intel Core i7-13700K",
			Price:       419.99,
			Description: "16 cores (8P+8E), 24 threads, up to 5.4 GHz max turbo",
			Category:    domain.CategoryCPU,
			Stock:       6,
			Image:       "https://placehold.co/600x400/0068b5/FFFFFF?text=Intel+i7-13700K",
			Specifications: map[string]string{
				"cores":      "16 (8P+8E)",
				"threads":    "24",
				"boostSpeed": "5.4 GHz",
				"cache":      "30MB",
				"tdp":        "125W",
			},
			Brand:  "Intel",
			Model:  "Core i7-13700K",
			Rating: floatPtr(4.7),
		},
		{
			ID:          "10",
			Name:        "WD Black SN850X 2TB",
			Price:       159.99,
			Description: "PCIe Gen4 NVMe SSD for gaming workloads",
			Category:    domain.CategoryStorage,
			Stock:       0,
			Image:       "https://placehold.co/600x400/111111/FFFFFF?text=WD+Black+SN850X",
			Specifications: map[string]string{
				"capacity":  "2TB",
				"interface": "PCIe Gen 4.0 x4",
				"readSpeed": "7,300 MB/s",
				"form":      "M.2 2280",
			},
			Brand:  "Western Digital",
			Model:  "SN850X",
			Rating: floatPtr(4.8),
		},
	}
}
