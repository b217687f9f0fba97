package workspace

import "doclens/pkg/models"

// sample is a built-in document offered in place of an upload.
type sample struct {
	name string
	text string
}

var samples = map[models.Sector]sample{
	models.SectorLaw: {
		name: "sample_service_agreement.txt",
		text: `SERVICE AGREEMENT

This Service Agreement is made on 1 March 2024 between ABC Technologies Pvt. Ltd. ("Service Provider") and XYZ Traders ("Client").

1. Services. The Service Provider shall maintain the Client's billing software and provide support on working days between 10 AM and 6 PM.
2. Fees. The Client shall pay Rs. 25,000 per month within 15 days of each invoice. Late payments attract interest at 18% per annum.
3. Term. This Agreement is valid for 12 months and renews automatically unless either party gives 30 days' written notice.
4. Confidentiality. Both parties shall keep business information confidential during the term and for 2 years after termination.
5. Termination. Either party may terminate for material breach that is not cured within 15 days of written notice.
6. Limitation of Liability. The Service Provider's total liability shall not exceed the fees paid in the preceding 3 months.
7. Dispute Resolution. Disputes shall be referred to arbitration in Hyderabad under the Arbitration and Conciliation Act, 1996.
8. Governing Law. This Agreement is governed by the laws of India.`,
	},
	models.SectorMedical: {
		name: "sample_discharge_summary.txt",
		text: `DISCHARGE SUMMARY

Patient: R. Kumar, Male, 58 years
Admitted: 10 June 2024   Discharged: 14 June 2024
Diagnosis: Type 2 Diabetes Mellitus with uncontrolled blood sugar; mild hypertension.

Investigations: Fasting blood sugar 212 mg/dL (normal 70-100). HbA1c 9.1% (target below 7%). Blood pressure 150/95 mmHg.

Medicines on discharge:
1. Metformin 500 mg, twice daily after food.
2. Glimepiride 1 mg, once daily before breakfast.
3. Amlodipine 5 mg, once daily in the morning.

Advice: Low sugar, low salt diet. Walk 30 minutes daily. Check blood sugar every morning and keep a record.
Warning signs: sweating, shaking or confusion (low sugar), chest pain or breathlessness. Go to the nearest hospital immediately if these occur.
Review: Diabetes clinic after 2 weeks with sugar records.`,
	},
	models.SectorAgriculture: {
		name: "sample_soil_health_card.txt",
		text: `SOIL HEALTH CARD

Farmer: S. Reddy   Village: Kondapur   Survey No.: 112/3   Area: 2.5 acres
Crop planned: Paddy (Kharif 2024)

Test results:
pH 8.1 (slightly alkaline). Organic carbon 0.38% (low). Available nitrogen 180 kg/ha (low). Phosphorus 28 kg/ha (medium). Potassium 310 kg/ha (high). Zinc 0.4 ppm (deficient).

Recommendations for paddy per acre:
1. Urea 52 kg in three splits: at transplanting, tillering and panicle initiation.
2. DAP 25 kg at transplanting.
3. No extra potash needed this season.
4. Zinc sulphate 10 kg at last puddling.
5. Apply 2 tonnes of farmyard manure before ploughing to raise organic carbon.

Scheme note: Apply for the fertiliser subsidy at the Rythu Seva Kendra before 30 June with this card and your Aadhaar.`,
	},
}
