package histdata

// Real annual market returns for stocks (S&P 500 with dividends), 10-year
// Treasury bonds, and 3-month T-bills, with annual inflation, from the NYU
// Stern historical dataset. Dividend and bond yields are December
// observations from Robert Shiller's dataset. One row per calendar year.
var years = []YearData{
	{Year: 1928, StockReturn: 0.4549, BondReturn: 0.0201, CashReturn: 0.0429, InflationRate: -0.0116, StockYield: 0.0367, BondYield: 0.0358},
	{Year: 1929, StockReturn: -0.0883, BondReturn: 0.036, CashReturn: 0.0256, InflationRate: 0.0058, StockYield: 0.0453, BondYield: 0.0332},
	{Year: 1930, StockReturn: -0.2001, BondReturn: 0.1168, CashReturn: 0.1169, InflationRate: -0.064, StockYield: 0.0632, BondYield: 0.0334},
	{Year: 1931, StockReturn: -0.3807, BondReturn: 0.0745, CashReturn: 0.1282, InflationRate: -0.0932, StockYield: 0.0972, BondYield: 0.0365},
	{Year: 1932, StockReturn: 0.0182, BondReturn: 0.2125, CashReturn: 0.1264, InflationRate: -0.1027, StockYield: 0.0733, BondYield: 0.0334},
	{Year: 1933, StockReturn: 0.4885, BondReturn: 0.0108, CashReturn: 0.002, InflationRate: 0.0076, StockYield: 0.0441, BondYield: 0.0314},
	{Year: 1934, StockReturn: -0.0266, BondReturn: 0.0635, CashReturn: -0.0122, InflationRate: 0.0152, StockYield: 0.0486, BondYield: 0.0282},
	{Year: 1935, StockReturn: 0.4249, BondReturn: 0.0144, CashReturn: -0.0274, InflationRate: 0.0299, StockYield: 0.036, BondYield: 0.0266},
	{Year: 1936, StockReturn: 0.3006, BondReturn: 0.0352, CashReturn: -0.0126, InflationRate: 0.0145, StockYield: 0.0422, BondYield: 0.0268},
	{Year: 1937, StockReturn: -0.3713, BondReturn: -0.0144, CashReturn: -0.0251, InflationRate: 0.0286, StockYield: 0.0726, BondYield: 0.0257},
	{Year: 1938, StockReturn: 0.3298, BondReturn: 0.0719, CashReturn: 0.0292, InflationRate: -0.0278, StockYield: 0.0402, BondYield: 0.0238},
	{Year: 1939, StockReturn: -0.011, BondReturn: 0.0441, CashReturn: 0.0005, InflationRate: 0.0, StockYield: 0.0501, BondYield: 0.0222},
	{Year: 1940, StockReturn: -0.1131, BondReturn: 0.0465, CashReturn: -0.0067, InflationRate: 0.0071, StockYield: 0.0636, BondYield: 0.0197},
	{Year: 1941, StockReturn: -0.2065, BondReturn: -0.1087, CashReturn: -0.0891, InflationRate: 0.0993, StockYield: 0.0811, BondYield: 0.0242},
	{Year: 1942, StockReturn: 0.093, BondReturn: -0.0618, CashReturn: -0.0797, InflationRate: 0.0903, StockYield: 0.062, BondYield: 0.0247},
	{Year: 1943, StockReturn: 0.2147, BondReturn: -0.0046, CashReturn: -0.025, InflationRate: 0.0296, StockYield: 0.0531, BondYield: 0.0248},
	{Year: 1944, StockReturn: 0.1636, BondReturn: 0.0027, CashReturn: -0.0188, InflationRate: 0.023, StockYield: 0.0489, BondYield: 0.0238},
	{Year: 1945, StockReturn: 0.3284, BondReturn: 0.0152, CashReturn: -0.0183, InflationRate: 0.0225, StockYield: 0.0381, BondYield: 0.0221},
	{Year: 1946, StockReturn: -0.2248, BondReturn: -0.127, CashReturn: -0.1503, InflationRate: 0.1813, StockYield: 0.0469, BondYield: 0.0225},
	{Year: 1947, StockReturn: -0.0334, BondReturn: -0.0727, CashReturn: -0.0757, InflationRate: 0.0884, StockYield: 0.0559, BondYield: 0.0242},
	{Year: 1948, StockReturn: 0.0263, BondReturn: -0.0101, CashReturn: -0.0189, InflationRate: 0.0299, StockYield: 0.0612, BondYield: 0.0232},
	{Year: 1949, StockReturn: 0.2081, BondReturn: 0.0688, CashReturn: 0.0326, InflationRate: -0.0207, StockYield: 0.0689, BondYield: 0.0232},
	{Year: 1950, StockReturn: 0.2348, BondReturn: -0.0519, CashReturn: -0.0446, InflationRate: 0.0593, StockYield: 0.0744, BondYield: 0.0255},
	{Year: 1951, StockReturn: 0.1668, BondReturn: -0.0594, CashReturn: -0.0423, InflationRate: 0.06, StockYield: 0.0602, BondYield: 0.0267},
	{Year: 1952, StockReturn: 0.1727, BondReturn: 0.015, CashReturn: 0.0096, InflationRate: 0.0075, StockYield: 0.0541, BondYield: 0.0282},
	{Year: 1953, StockReturn: -0.0194, BondReturn: 0.0337, CashReturn: 0.0113, InflationRate: 0.0075, StockYield: 0.0584, BondYield: 0.0259},
	{Year: 1954, StockReturn: 0.5371, BondReturn: 0.0406, CashReturn: 0.0169, InflationRate: -0.0074, StockYield: 0.044, BondYield: 0.0251},
	{Year: 1955, StockReturn: 0.321, BondReturn: -0.017, CashReturn: 0.0134, InflationRate: 0.0037, StockYield: 0.0361, BondYield: 0.0296},
	{Year: 1956, StockReturn: 0.0433, BondReturn: -0.0509, CashReturn: -0.0035, InflationRate: 0.0299, StockYield: 0.0375, BondYield: 0.0359},
	{Year: 1957, StockReturn: -0.1298, BondReturn: 0.0379, CashReturn: 0.0032, InflationRate: 0.029, StockYield: 0.0444, BondYield: 0.0321},
	{Year: 1958, StockReturn: 0.4123, BondReturn: -0.0379, CashReturn: 0.0001, InflationRate: 0.0176, StockYield: 0.0327, BondYield: 0.0386},
	{Year: 1959, StockReturn: 0.1015, BondReturn: -0.043, CashReturn: 0.0163, InflationRate: 0.0173, StockYield: 0.031, BondYield: 0.0469},
	{Year: 1960, StockReturn: -0.0101, BondReturn: 0.1014, CashReturn: 0.0149, InflationRate: 0.0136, StockYield: 0.0343, BondYield: 0.0384},
	{Year: 1961, StockReturn: 0.2579, BondReturn: 0.0138, CashReturn: 0.0167, InflationRate: 0.0067, StockYield: 0.0282, BondYield: 0.0406},
	{Year: 1962, StockReturn: -0.1001, BondReturn: 0.043, CashReturn: 0.0142, InflationRate: 0.0133, StockYield: 0.034, BondYield: 0.0386},
	{Year: 1963, StockReturn: 0.2063, BondReturn: 0.0004, CashReturn: 0.0149, InflationRate: 0.0164, StockYield: 0.0307, BondYield: 0.0413},
	{Year: 1964, StockReturn: 0.153, BondReturn: 0.0273, CashReturn: 0.0255, InflationRate: 0.0097, StockYield: 0.0298, BondYield: 0.0418},
	{Year: 1965, StockReturn: 0.1028, BondReturn: -0.0118, CashReturn: 0.0199, InflationRate: 0.0192, StockYield: 0.0297, BondYield: 0.0462},
	{Year: 1966, StockReturn: -0.1298, BondReturn: -0.0053, CashReturn: 0.0135, InflationRate: 0.0346, StockYield: 0.0353, BondYield: 0.0484},
	{Year: 1967, StockReturn: 0.2015, BondReturn: -0.0448, CashReturn: 0.0122, InflationRate: 0.0304, StockYield: 0.0306, BondYield: 0.057},
	{Year: 1968, StockReturn: 0.0582, BondReturn: -0.0138, CashReturn: 0.0059, InflationRate: 0.0472, StockYield: 0.0288, BondYield: 0.0603},
	{Year: 1969, StockReturn: -0.136, BondReturn: -0.1056, CashReturn: 0.0044, InflationRate: 0.062, StockYield: 0.0347, BondYield: 0.0765},
	{Year: 1970, StockReturn: -0.019, BondReturn: 0.1059, CashReturn: 0.0078, InflationRate: 0.0557, StockYield: 0.0349, BondYield: 0.0639},
	{Year: 1971, StockReturn: 0.1061, BondReturn: 0.0631, CashReturn: 0.0103, InflationRate: 0.0327, StockYield: 0.031, BondYield: 0.0593},
	{Year: 1972, StockReturn: 0.1484, BondReturn: -0.0057, CashReturn: 0.0063, InflationRate: 0.0341, StockYield: 0.0268, BondYield: 0.0636},
	{Year: 1973, StockReturn: -0.2117, BondReturn: -0.0464, CashReturn: -0.0154, InflationRate: 0.0871, StockYield: 0.0357, BondYield: 0.0674},
	{Year: 1974, StockReturn: -0.3404, BondReturn: -0.0921, CashReturn: -0.04, InflationRate: 0.1234, StockYield: 0.0537, BondYield: 0.0743},
	{Year: 1975, StockReturn: 0.2811, BondReturn: -0.0312, CashReturn: -0.0108, InflationRate: 0.0694, StockYield: 0.0415, BondYield: 0.08},
	{Year: 1976, StockReturn: 0.1809, BondReturn: 0.106, CashReturn: 0.0011, InflationRate: 0.0486, StockYield: 0.0387, BondYield: 0.0687},
	{Year: 1977, StockReturn: -0.1282, BondReturn: -0.0507, CashReturn: -0.0135, InflationRate: 0.067, StockYield: 0.0498, BondYield: 0.0769},
	{Year: 1978, StockReturn: -0.023, BondReturn: -0.0899, CashReturn: -0.0169, InflationRate: 0.0902, StockYield: 0.0528, BondYield: 0.0901},
	{Year: 1979, StockReturn: 0.0461, BondReturn: -0.1114, CashReturn: -0.0286, InflationRate: 0.1329, StockYield: 0.0524, BondYield: 0.1039},
	{Year: 1980, StockReturn: 0.1708, BondReturn: -0.1378, CashReturn: -0.01, InflationRate: 0.1252, StockYield: 0.0461, BondYield: 0.1284},
	{Year: 1981, StockReturn: -0.1251, BondReturn: -0.0066, CashReturn: 0.0469, InflationRate: 0.0892, StockYield: 0.0536, BondYield: 0.1372},
	{Year: 1982, StockReturn: 0.1598, BondReturn: 0.2792, CashReturn: 0.0652, InflationRate: 0.0383, StockYield: 0.0493, BondYield: 0.1054},
	{Year: 1983, StockReturn: 0.1787, BondReturn: -0.0057, CashReturn: 0.0465, InflationRate: 0.0379, StockYield: 0.0431, BondYield: 0.1183},
	{Year: 1984, StockReturn: 0.0211, BondReturn: 0.0941, CashReturn: 0.0538, InflationRate: 0.0395, StockYield: 0.0458, BondYield: 0.115},
	{Year: 1985, StockReturn: 0.2643, BondReturn: 0.2111, CashReturn: 0.0354, InflationRate: 0.038, StockYield: 0.0381, BondYield: 0.0926},
	{Year: 1986, StockReturn: 0.1721, BondReturn: 0.2293, CashReturn: 0.0482, InflationRate: 0.011, StockYield: 0.0333, BondYield: 0.0711},
	{Year: 1987, StockReturn: 0.0132, BondReturn: -0.09, CashReturn: 0.0129, InflationRate: 0.0443, StockYield: 0.0366, BondYield: 0.0899},
	{Year: 1988, StockReturn: 0.116, BondReturn: 0.0364, CashReturn: 0.0215, InflationRate: 0.0442, StockYield: 0.0353, BondYield: 0.0911},
	{Year: 1989, StockReturn: 0.2564, BondReturn: 0.1247, CashReturn: 0.0331, InflationRate: 0.0465, StockYield: 0.0317, BondYield: 0.0784},
	{Year: 1990, StockReturn: -0.0864, BondReturn: 0.0012, CashReturn: 0.0131, InflationRate: 0.0611, StockYield: 0.0368, BondYield: 0.0808},
	{Year: 1991, StockReturn: 0.2636, BondReturn: 0.1159, CashReturn: 0.0224, InflationRate: 0.0306, StockYield: 0.0314, BondYield: 0.0709},
	{Year: 1992, StockReturn: 0.0446, BondReturn: 0.0628, CashReturn: 0.0052, InflationRate: 0.029, StockYield: 0.0284, BondYield: 0.0677},
	{Year: 1993, StockReturn: 0.0703, BondReturn: 0.1116, CashReturn: 0.0024, InflationRate: 0.0275, StockYield: 0.027, BondYield: 0.0577},
	{Year: 1994, StockReturn: -0.0131, BondReturn: -0.1043, CashReturn: 0.0154, InflationRate: 0.0267, StockYield: 0.0289, BondYield: 0.0781},
	{Year: 1995, StockReturn: 0.338, BondReturn: 0.2042, CashReturn: 0.0288, InflationRate: 0.0254, StockYield: 0.0224, BondYield: 0.0571},
	{Year: 1996, StockReturn: 0.1874, BondReturn: -0.0183, CashReturn: 0.0163, InflationRate: 0.0332, StockYield: 0.02, BondYield: 0.063},
	{Year: 1997, StockReturn: 0.3088, BondReturn: 0.081, CashReturn: 0.033, InflationRate: 0.017, StockYield: 0.0161, BondYield: 0.0581},
	{Year: 1998, StockReturn: 0.263, BondReturn: 0.131, CashReturn: 0.0311, InflationRate: 0.0161, StockYield: 0.0136, BondYield: 0.0465},
	{Year: 1999, StockReturn: 0.1772, BondReturn: -0.1065, CashReturn: 0.019, InflationRate: 0.0268, StockYield: 0.0117, BondYield: 0.0628},
	{Year: 2000, StockReturn: -0.1201, BondReturn: 0.1283, CashReturn: 0.0235, InflationRate: 0.0339, StockYield: 0.0122, BondYield: 0.0524},
	{Year: 2001, StockReturn: -0.132, BondReturn: 0.0396, CashReturn: 0.0182, InflationRate: 0.0155, StockYield: 0.0137, BondYield: 0.0509},
	{Year: 2002, StockReturn: -0.2378, BondReturn: 0.1244, CashReturn: -0.0075, InflationRate: 0.0238, StockYield: 0.0179, BondYield: 0.0403},
	{Year: 2003, StockReturn: 0.2599, BondReturn: -0.0148, CashReturn: -0.0086, InflationRate: 0.0188, StockYield: 0.0161, BondYield: 0.0427},
	{Year: 2004, StockReturn: 0.0725, BondReturn: 0.012, CashReturn: -0.0182, InflationRate: 0.0326, StockYield: 0.0162, BondYield: 0.0423},
	{Year: 2005, StockReturn: 0.0137, BondReturn: -0.0053, CashReturn: -0.0026, InflationRate: 0.0342, StockYield: 0.0176, BondYield: 0.0447},
	{Year: 2006, StockReturn: 0.1275, BondReturn: -0.0057, CashReturn: 0.0214, InflationRate: 0.0254, StockYield: 0.0176, BondYield: 0.0456},
	{Year: 2007, StockReturn: 0.0135, BondReturn: 0.0589, CashReturn: 0.0027, InflationRate: 0.0408, StockYield: 0.0187, BondYield: 0.041},
	{Year: 2008, StockReturn: -0.3661, BondReturn: 0.1999, CashReturn: 0.0128, InflationRate: 0.0009, StockYield: 0.0324, BondYield: 0.0242},
	{Year: 2009, StockReturn: 0.226, BondReturn: -0.1347, CashReturn: -0.025, InflationRate: 0.0272, StockYield: 0.0202, BondYield: 0.0359},
	{Year: 2010, StockReturn: 0.1313, BondReturn: 0.0686, CashReturn: -0.0134, InflationRate: 0.015, StockYield: 0.0183, BondYield: 0.0329},
	{Year: 2011, StockReturn: -0.0084, BondReturn: 0.127, CashReturn: -0.0283, InflationRate: 0.0296, StockYield: 0.0213, BondYield: 0.0198},
	{Year: 2012, StockReturn: 0.1391, BondReturn: 0.0121, CashReturn: -0.0163, InflationRate: 0.0174, StockYield: 0.022, BondYield: 0.0172},
	{Year: 2013, StockReturn: 0.3019, BondReturn: -0.1045, CashReturn: -0.0142, InflationRate: 0.015, StockYield: 0.0194, BondYield: 0.029},
	{Year: 2014, StockReturn: 0.1267, BondReturn: 0.0991, CashReturn: -0.0072, InflationRate: 0.0076, StockYield: 0.0192, BondYield: 0.0221},
	{Year: 2015, StockReturn: 0.0064, BondReturn: 0.0055, CashReturn: -0.0067, InflationRate: 0.0073, StockYield: 0.0211, BondYield: 0.0224},
	{Year: 2016, StockReturn: 0.095, BondReturn: -0.0136, CashReturn: -0.0172, InflationRate: 0.0207, StockYield: 0.0203, BondYield: 0.0249},
	{Year: 2017, StockReturn: 0.1909, BondReturn: 0.0068, CashReturn: -0.0115, InflationRate: 0.0211, StockYield: 0.0184, BondYield: 0.024},
	{Year: 2018, StockReturn: -0.0602, BondReturn: -0.0189, CashReturn: 0.0003, InflationRate: 0.0191, StockYield: 0.0209, BondYield: 0.0283},
	{Year: 2019, StockReturn: 0.2828, BondReturn: 0.0719, CashReturn: -0.0022, InflationRate: 0.0229, StockYield: 0.0183, BondYield: 0.0186},
	{Year: 2020, StockReturn: 0.1644, BondReturn: 0.0984, CashReturn: -0.0099, InflationRate: 0.0136, StockYield: 0.0158, BondYield: 0.0093},
	{Year: 2021, StockReturn: 0.2002, BondReturn: -0.107, CashReturn: -0.0653, InflationRate: 0.0704, StockYield: 0.0129, BondYield: 0.0147},
	{Year: 2022, StockReturn: -0.2301, BondReturn: -0.2281, CashReturn: -0.0416, InflationRate: 0.0645, StockYield: 0.0171, BondYield: 0.0362},
	{Year: 2023, StockReturn: 0.2197, BondReturn: 0.0051, CashReturn: 0.0166, InflationRate: 0.0335, StockYield: 0.015, BondYield: 0.0402},
	{Year: 2024, StockReturn: 0.2154, BondReturn: -0.0427, CashReturn: 0.0216, InflationRate: 0.0275, StockYield: 0.0124, BondYield: 0.0439},
}
